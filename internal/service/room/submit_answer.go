package room

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Receipt acknowledges an accepted answer.
type Receipt struct {
	RoomID      string
	SubmittedAt time.Time
	Position    int
}

// SubmitAnswer validates and appends one participant's answer. The caller
// whose append fills the room schedules generation; the HTTP response does
// not wait for it.
func (s *Service) SubmitAnswer(ctx context.Context, roomID string, input SubmitAnswerInput) (*Receipt, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	input = input.clean()
	questionIDs := room.QuestionIDs()
	if err := input.Validate(questionIDs); err != nil {
		return nil, err
	}

	answer := input.toAnswer(questionIDs)
	answer.SubmittedAt = s.now()

	count, err := s.store.AppendAnswer(ctx, roomID, answer)
	if err != nil {
		return nil, fmt.Errorf("append answer: %w", err)
	}
	if s.metrics != nil {
		s.metrics.AnswerSubmitted()
	}

	s.log.InfoContext(ctx, "answer accepted",
		slog.String("room_id", roomID),
		slog.Int("count", count),
		slog.Int("capacity", room.Capacity),
	)

	if count == room.Capacity {
		s.scheduleGeneration(ctx, room)
	}

	return &Receipt{RoomID: roomID, SubmittedAt: answer.SubmittedAt, Position: count}, nil
}
