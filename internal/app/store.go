package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/icebreaker-backend/internal/adapter/memory"
	"github.com/heartmarshall/icebreaker-backend/internal/adapter/mongodb"
	"github.com/heartmarshall/icebreaker-backend/internal/adapter/postgres"
	pgroom "github.com/heartmarshall/icebreaker-backend/internal/adapter/postgres/room"
	"github.com/heartmarshall/icebreaker-backend/internal/config"
	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// Store is the room store contract every backend satisfies.
type Store interface {
	CreateRoom(ctx context.Context, room domain.Room) error
	GetRoom(ctx context.Context, id string) (*domain.Room, error)
	AppendAnswer(ctx context.Context, roomID string, answer domain.Answer) (int, error)
	ListAnswers(ctx context.Context, roomID string) ([]domain.Answer, error)
	CountAnswers(ctx context.Context, roomID string) (int, error)
	SaveResult(ctx context.Context, roomID string, result domain.Result) error
	GetResult(ctx context.Context, roomID string) (*domain.Result, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*pgroom.Repo)(nil)
	_ Store = (*mongodb.Store)(nil)
)

// OpenStore connects the configured backend.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.StoreMemory:
		logger.Warn("using in-memory store; rooms are lost on restart")
		return memory.New(), nil

	case config.StorePostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.MigrateUp(ctx, cfg.Database.DSN); err != nil {
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
			logger.Info("database migrations applied")
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to postgres",
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
		)
		return pgroom.New(pool, postgres.NewTxManager(pool)), nil

	case config.StoreMongo:
		db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		store := mongodb.New(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		logger.Info("connected to mongo", slog.String("database", cfg.Mongo.Database))
		return store, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
