package app

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/icebreaker-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/icebreaker-backend/internal/adapter/provider/stub"
	"github.com/heartmarshall/icebreaker-backend/internal/config"
)

// Generator produces model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator returns the Claude provider, or the stub when no API key is
// configured so every assignment takes the fallback path.
func NewGenerator(cfg config.LLMConfig, logger *slog.Logger) Generator {
	if !cfg.Enabled() {
		logger.Warn("LLM API key not set; role assignment will use the deterministic fallback")
		return stub.NewProvider()
	}
	logger.Info("LLM provider configured",
		slog.String("model", cfg.Model),
		slog.Duration("timeout", cfg.Timeout),
	)
	return claude.NewProvider(cfg, logger)
}
