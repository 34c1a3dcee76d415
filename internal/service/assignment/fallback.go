package assignment

import (
	"fmt"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

var fallbackRecommendations = []string{
	"定期的にチームミーティングを開催し、各役割の進捗を共有しましょう",
	"メンバー同士の協力関係を築くために、交流の機会を作ることをお勧めします",
	"各役割の責任範囲を明確にし、必要に応じて調整を行いましょう",
}

func fallbackReason(name, aspiration string, role domain.Role) string {
	return fmt.Sprintf("%sさんの意気込み「%s」から、%sとして活躍できると判断しました。", name, aspiration, role.Description)
}

func fallbackTips(role domain.Role) string {
	return fmt.Sprintf("%sとして、チームの中で%s役割を意識して行動してください。", role.Title, role.Description)
}

func assignmentFor(a domain.Answer, role domain.Role, reason, tips string) domain.RoleAssignment {
	return domain.RoleAssignment{
		Name:             a.Name,
		Birthdate:        a.Birthdate,
		Age:              a.Age,
		Hometown:         a.Hometown,
		Affiliation:      a.Affiliation,
		Aspiration:       a.Aspiration,
		RoleID:           role.ID,
		RoleTitle:        role.Title,
		RoleTitleEnglish: role.EnglishTitle,
		Reason:           reason,
		Tips:             tips,
	}
}

// roomFallback assigns catalog roles round-robin by participant index.
func roomFallback(answers []domain.Answer) []domain.RoleAssignment {
	roles := domain.RoleCatalog()
	out := make([]domain.RoleAssignment, len(answers))
	for i, a := range answers {
		role := roles[i%len(roles)]
		out[i] = assignmentFor(a, role, fallbackReason(a.Name, a.Aspiration, role), fallbackTips(role))
	}
	return out
}

// memberFallback assigns roles round-robin with a placeholder score in 85..99.
func memberFallback(members []domain.Member, roles []domain.Role, intn func(int) int) *domain.TeamAssignment {
	out := &domain.TeamAssignment{
		Assignments:     make([]domain.MemberAssignment, len(members)),
		TeamAnalysis:    fmt.Sprintf("%d人のチームで、多様な背景と経験を持つメンバーが集まっています。各メンバーの意気込みと特性を考慮して役割を割り振りました。", len(members)),
		Recommendations: append([]string(nil), fallbackRecommendations...),
		Source:          domain.SourceFallback,
	}
	for i, m := range members {
		role := roles[i%len(roles)]
		out.Assignments[i] = domain.MemberAssignment{
			MemberID:   m.ID,
			MemberName: m.Name,
			RoleID:     role.ID,
			RoleTitle:  role.Title,
			MatchScore: 85 + intn(15),
			Reasoning:  fallbackReason(m.Name, m.Motivation, role),
		}
	}
	return out
}
