package room

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// CreatedRoom is a new room together with its shareable URL.
type CreatedRoom struct {
	Room *domain.Room
	URL  string
}

// CreateRoom validates the capacity, draws the room's questions from the
// pool and stores the room.
func (s *Service) CreateRoom(ctx context.Context, input CreateRoomInput) (*CreatedRoom, error) {
	if err := input.Validate(s.cfg.MinCapacity, s.cfg.MaxCapacity); err != nil {
		return nil, err
	}

	room := domain.Room{
		ID:        s.newID(),
		Capacity:  *input.Capacity,
		Questions: s.pickQuestions(),
		CreatedAt: s.now(),
		Status:    domain.RoomStatusActive,
	}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RoomCreated()
	}

	s.log.InfoContext(ctx, "room created",
		slog.String("room_id", room.ID),
		slog.Int("capacity", room.Capacity),
	)

	return &CreatedRoom{
		Room: &room,
		URL:  strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/rooms/" + room.ID,
	}, nil
}

func (s *Service) pickQuestions() []domain.Question {
	pool := domain.QuestionPool()
	n := min(max(s.cfg.QuestionsPerRoom, 1), len(pool))

	out := make([]domain.Question, 0, n)
	for _, idx := range s.perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// GetRoom returns the room or domain.ErrNotFound.
func (s *Service) GetRoom(ctx context.Context, id string) (*domain.Room, error) {
	room, err := s.store.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return room, nil
}
