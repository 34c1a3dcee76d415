package assignment

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

const roomPromptRules = `Rules:
1. Give each participant a different role.
2. Take both the answers and the background (hometown, affiliation, aspiration) into account.
3. The reason must be concrete and refer to what the participant actually wrote.
4. In tips, recommend the facilitator (司会), note-taker (書記) and presenter (発表者) tasks to one member each, with no overlap across the team.
5. Keep roleId, roleTitle, reason and tips consistent with each other.
6. Never write anything negative about a participant.
7. Write reason and tips in %s.`

func buildRoomPrompt(room *domain.Room, answers []domain.Answer, language string) string {
	var b strings.Builder

	b.WriteString("You are assigning roles to the members of a team icebreaker session.\n")
	b.WriteString("Pick the most fitting role for each participant from the list below.\n\n")

	b.WriteString("Roles:\n")
	writeRoles(&b, domain.RoleCatalog())

	if room != nil && len(room.Questions) > 0 {
		b.WriteString("\nQuestions:\n")
		for _, q := range room.Questions {
			fmt.Fprintf(&b, "- %s: %s\n", q.ID, q.Text)
		}
	}

	b.WriteString("\nParticipants:\n")
	for i, a := range answers {
		fmt.Fprintf(&b, "%d. %s (%d歳)\n", i+1, a.Name, a.Age)
		fmt.Fprintf(&b, "   birthdate: %s\n", a.Birthdate)
		fmt.Fprintf(&b, "   hometown: %s\n", a.Hometown)
		fmt.Fprintf(&b, "   affiliation: %s\n", a.Affiliation)
		fmt.Fprintf(&b, "   aspiration: %s\n", a.Aspiration)
		for _, qa := range a.Answers {
			fmt.Fprintf(&b, "   %s: %s\n", qa.QuestionID, qa.Answer)
		}
	}

	b.WriteString(`
Respond with a JSON array only, one object per participant in the order listed above:
[
  {
    "name": "participant name",
    "birthdate": "YYYY-MM-DD",
    "age": 25,
    "hometown": "hometown",
    "affiliation": "affiliation",
    "aspiration": "aspiration",
    "roleId": "1",
    "roleTitle": "role title",
    "roleTitleEnglish": "English role title",
    "reason": "why this role fits",
    "tips": "how to act in this role today"
  }
]

`)
	fmt.Fprintf(&b, roomPromptRules, language)
	return b.String()
}

func buildMemberPrompt(members []domain.Member, roles []domain.Role, language string) string {
	var b strings.Builder

	b.WriteString("You are building a project team. Assign the best role to each member.\n\n")

	b.WriteString("Members:\n")
	for i, m := range members {
		fmt.Fprintf(&b, "%d. id=%s name=%s age=%d birthday=%s hometown=%s organization=%s\n",
			i+1, m.ID, m.Name, m.Age, m.Birthday, m.Hometown, m.Organization)
		fmt.Fprintf(&b, "   motivation: %s\n", m.Motivation)
	}

	b.WriteString("\nAvailable roles:\n")
	writeRoles(&b, roles)

	fmt.Fprintf(&b, `
Respond with a JSON object only:
{
  "assignments": [
    {
      "memberId": "member id",
      "memberName": "member name",
      "roleId": "role id",
      "roleTitle": "role title",
      "matchScore": 90,
      "reasoning": "why this member fits the role"
    }
  ],
  "teamAnalysis": "overall analysis of the team",
  "recommendations": ["advice for the team"]
}

Rules:
1. Assign exactly one role to every member and avoid giving the same role twice where possible.
2. matchScore is an integer between 85 and 100.
3. Base the reasoning on the member's motivation and background. Never write anything negative.
4. Write reasoning, teamAnalysis and recommendations in %s.`, language)
	return b.String()
}

func writeRoles(b *strings.Builder, roles []domain.Role) {
	for _, r := range roles {
		fmt.Fprintf(b, "- %s: %s (%s): %s\n", r.ID, r.Title, r.EnglishTitle, r.Description)
	}
}
