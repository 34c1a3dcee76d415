package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/pkg/ctxutil"
)

// Error codes stored on error results.
const (
	CodeGenerationFailed       = "GENERATION_FAILED"
	CodeGenerationNotScheduled = "GENERATION_NOT_SCHEDULED"
)

// Generation task outcomes reported to metrics.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeRejected  = "rejected"
	OutcomeDuplicate = "duplicate"
)

// saveTimeout bounds result writes, which run detached from the task context
// so a forced shutdown still records the outcome.
const saveTimeout = 5 * time.Second

func (s *Service) scheduleGeneration(ctx context.Context, room *domain.Room) {
	roomID := room.ID
	err := s.queue.Submit(func(taskCtx context.Context) {
		s.generate(ctxutil.WithRoomID(taskCtx, roomID), room)
	})
	if err == nil {
		s.log.InfoContext(ctx, "generation scheduled", slog.String("room_id", roomID))
		return
	}

	s.log.ErrorContext(ctx, "generation not scheduled",
		slog.String("room_id", roomID),
		slog.String("error", err.Error()),
	)
	s.recordOutcome(OutcomeRejected)
	s.saveError(ctx, roomID, CodeGenerationNotScheduled, "role generation could not be scheduled")
}

// generate loads the answers, runs the assigner and stores the result.
// Any failure, including a panic, ends in an error result.
func (s *Service) generate(ctx context.Context, room *domain.Room) {
	start := time.Now()
	log := s.log.With(slog.String("room_id", room.ID))

	defer func() {
		if rec := recover(); rec != nil {
			log.ErrorContext(ctx, "generation panicked", slog.Any("panic", rec))
			s.recordOutcome(OutcomeFailed)
			s.saveError(ctx, room.ID, CodeGenerationFailed, "role generation failed")
		}
	}()

	answers, err := s.store.ListAnswers(ctx, room.ID)
	if err != nil {
		log.ErrorContext(ctx, "load answers", slog.String("error", err.Error()))
		s.recordOutcome(OutcomeFailed)
		s.saveError(ctx, room.ID, CodeGenerationFailed, "role generation failed")
		return
	}

	result := s.assigner.AssignRoom(ctx, room, answers)
	if err := s.saveResult(ctx, room.ID, result); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			log.WarnContext(ctx, "result already stored")
			s.recordOutcome(OutcomeDuplicate)
			return
		}
		log.ErrorContext(ctx, "save result", slog.String("error", err.Error()))
		s.recordOutcome(OutcomeFailed)
		s.saveError(ctx, room.ID, CodeGenerationFailed, "role generation failed")
		return
	}

	s.recordOutcome(OutcomeCompleted)
	log.InfoContext(ctx, "generation completed",
		slog.Int("participants", len(answers)),
		slog.String("source", result.Source.String()),
		slog.Duration("duration", time.Since(start)),
	)
}

func (s *Service) saveResult(ctx context.Context, roomID string, result domain.Result) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := s.store.SaveResult(ctx, roomID, result); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (s *Service) saveError(ctx context.Context, roomID, code, message string) {
	err := s.saveResult(ctx, roomID, domain.NewErrorResult(code, message, s.now()))
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		s.log.ErrorContext(ctx, "save error result",
			slog.String("room_id", roomID),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.GenerationTask(outcome)
	}
}
