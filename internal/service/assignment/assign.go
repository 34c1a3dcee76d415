package assignment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/metrics"
	"github.com/heartmarshall/icebreaker-backend/pkg/ctxutil"
)

// AssignRoom assigns a catalog role to every participant of a full room.
// It never fails: provider and parse errors produce a fallback result.
func (s *Service) AssignRoom(ctx context.Context, room *domain.Room, answers []domain.Answer) domain.Result {
	start := time.Now()
	log := s.log
	if roomID, ok := ctxutil.RoomIDFromCtx(ctx); ok {
		log = log.With("room_id", roomID)
	}

	result := domain.Result{Source: domain.SourceAI}

	assignments, err := s.generateRoom(ctx, room, answers)
	if err != nil {
		s.logFailure(log, metrics.VariantRoom, err)
		assignments = roomFallback(answers)
		result.Source = domain.SourceFallback
	}

	result.Assignments = assignments
	result.GeneratedAt = s.now()
	s.observe(metrics.VariantRoom, result.Source, time.Since(start))

	log.InfoContext(ctx, "room assignment generated",
		slog.Int("participants", len(answers)),
		slog.String("source", result.Source.String()),
		slog.Duration("duration", time.Since(start)),
	)
	return result
}

func (s *Service) generateRoom(ctx context.Context, room *domain.Room, answers []domain.Answer) ([]domain.RoleAssignment, error) {
	if len(answers) == 0 {
		return []domain.RoleAssignment{}, nil
	}
	text, err := s.gen.Generate(ctx, buildRoomPrompt(room, answers, s.language))
	if err != nil {
		return nil, err
	}
	return parseRoomResponse(text, answers)
}

// AssignMembers sanitizes and validates the input, then assigns roles to the given members.
// Only validation errors are returned; provider and parse errors produce a
// fallback result.
func (s *Service) AssignMembers(ctx context.Context, input AssignMembersInput) (*domain.TeamAssignment, error) {
	input = input.clean()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	roles := input.roles()

	start := time.Now()
	team, err := s.generateMembers(ctx, input.Members, roles)
	if err != nil {
		s.logFailure(s.log, metrics.VariantMember, err)
		team = memberFallback(input.Members, roles, s.intn)
	}
	s.observe(metrics.VariantMember, team.Source, time.Since(start))

	s.log.InfoContext(ctx, "member assignment generated",
		slog.Int("members", len(input.Members)),
		slog.String("source", team.Source.String()),
	)
	return team, nil
}

func (s *Service) generateMembers(ctx context.Context, members []domain.Member, roles []domain.Role) (*domain.TeamAssignment, error) {
	text, err := s.gen.Generate(ctx, buildMemberPrompt(members, roles, s.language))
	if err != nil {
		return nil, err
	}
	return parseMemberResponse(text)
}

func (s *Service) logFailure(log *slog.Logger, variant string, err error) {
	var pe *ParseError
	switch {
	case errors.As(err, &pe):
		log.Warn("model output rejected, using fallback",
			slog.String("variant", variant),
			slog.String("kind", string(pe.Kind)),
			slog.String("error", err.Error()),
		)
		if s.metrics != nil {
			s.metrics.ParseFailure(variant, string(pe.Kind))
		}
	case errors.Is(err, domain.ErrProviderUnavailable):
		log.Debug("provider unavailable, using fallback", slog.String("variant", variant))
	default:
		log.Warn("provider call failed, using fallback",
			slog.String("variant", variant),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) observe(variant string, source domain.AssignmentSource, d time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveAssignment(variant, source.String(), d)
	}
}
