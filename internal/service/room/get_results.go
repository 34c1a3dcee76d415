package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// ResultView is what a poll of a room's results sees.
type ResultView struct {
	RoomID string
	Status domain.ResultStatus

	// Set while processing.
	Remaining           int
	Message             string
	EstimatedCompletion time.Time

	// Set once a result exists.
	Result *domain.Result
}

// GetResults reports processing until a result has been written, then the
// stored result or error record.
func (s *Service) GetResults(ctx context.Context, roomID string) (*ResultView, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	result, err := s.store.GetResult(ctx, roomID)
	switch {
	case err == nil:
		status := domain.ResultStatusCompleted
		if result.Failed() {
			status = domain.ResultStatusError
		}
		return &ResultView{RoomID: roomID, Status: status, Result: result}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get result: %w", err)
	}

	count, err := s.store.CountAnswers(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	remaining := max(room.Capacity-count, 0)

	return &ResultView{
		RoomID:              roomID,
		Status:              domain.ResultStatusProcessing,
		Remaining:           remaining,
		Message:             processingMessage(remaining),
		EstimatedCompletion: s.now().Add(s.cfg.EstimatedWait),
	}, nil
}

func processingMessage(remaining int) string {
	if remaining == 0 {
		return "全員の回答が揃いました。役割を生成しています。"
	}
	return fmt.Sprintf("あと%d人の回答を待っています。", remaining)
}
