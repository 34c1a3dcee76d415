package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// Absolute capacity bounds; configured bounds must stay inside them.
const (
	capacityFloor   = 2
	capacityCeiling = 10
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Room.validate(); err != nil {
		return fmt.Errorf("room: %w", err)
	}

	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("worker.concurrency must be >= 1 (got %d)", c.Worker.Concurrency)
	}
	if c.Worker.QueueSize < 0 {
		return fmt.Errorf("worker.queue_size must be >= 0 (got %d)", c.Worker.QueueSize)
	}

	if c.LLM.Enabled() && c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	return nil
}

func (r *RoomConfig) validate() error {
	if r.MinCapacity < capacityFloor {
		return fmt.Errorf("min_capacity must be >= %d (got %d)", capacityFloor, r.MinCapacity)
	}
	if r.MaxCapacity > capacityCeiling {
		return fmt.Errorf("max_capacity must be <= %d (got %d)", capacityCeiling, r.MaxCapacity)
	}
	if r.MinCapacity > r.MaxCapacity {
		return fmt.Errorf("min_capacity %d exceeds max_capacity %d", r.MinCapacity, r.MaxCapacity)
	}
	if pool := len(domain.QuestionPool()); r.QuestionsPerRoom < 1 || r.QuestionsPerRoom > pool {
		return fmt.Errorf("questions_per_room must be in 1..%d (got %d)", pool, r.QuestionsPerRoom)
	}
	if r.EstimatedWait < 0 {
		return fmt.Errorf("estimated_wait must be >= 0 (got %v)", r.EstimatedWait)
	}
	return nil
}

func (s *StoreConfig) validate() error {
	switch s.Driver {
	case StoreMemory:
	case StorePostgres:
		if s.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	case StoreMongo:
		if s.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required for the mongo driver")
		}
		if s.Mongo.Database == "" {
			return fmt.Errorf("mongo.database is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (want memory, postgres or mongo)", s.Driver)
	}
	return nil
}
