// Package room implements the room lifecycle: creation, answer collection,
// result polling and the generation task that runs when a room fills up.
package room

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/icebreaker-backend/internal/config"
	"github.com/heartmarshall/icebreaker-backend/internal/domain"
	"github.com/heartmarshall/icebreaker-backend/internal/worker"
)

type roomStore interface {
	CreateRoom(ctx context.Context, room domain.Room) error
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	AppendAnswer(ctx context.Context, roomID string, answer domain.Answer) (int, error)
	ListAnswers(ctx context.Context, roomID string) ([]domain.Answer, error)
	CountAnswers(ctx context.Context, roomID string) (int, error)
	SaveResult(ctx context.Context, roomID string, result domain.Result) error
	GetResult(ctx context.Context, roomID string) (*domain.Result, error)
}

type assigner interface {
	AssignRoom(ctx context.Context, room *domain.Room, answers []domain.Answer) domain.Result
}

type taskQueue interface {
	Submit(task worker.Task) error
}

type metricsRecorder interface {
	RoomCreated()
	AnswerSubmitted()
	GenerationTask(outcome string)
}

// Service orchestrates the room store, the assigner and the task queue.
type Service struct {
	store    roomStore
	assigner assigner
	queue    taskQueue
	metrics  metricsRecorder
	log      *slog.Logger
	cfg      config.RoomConfig

	now   func() time.Time
	newID func() string
	perm  func(n int) []int
}

// NewService creates a room Service.
func NewService(
	log *slog.Logger,
	store roomStore,
	assigner assigner,
	queue taskQueue,
	metrics metricsRecorder,
	cfg config.RoomConfig,
) *Service {
	return &Service{
		store:    store,
		assigner: assigner,
		queue:    queue,
		metrics:  metrics,
		log:      log.With("service", "room"),
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
		perm:     rand.Perm,
	}
}
