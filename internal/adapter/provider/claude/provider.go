// Package claude sends prompts to the Anthropic Messages API.
package claude

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/icebreaker-backend/internal/config"
)

// Provider produces one completion per prompt. It does not retry: a failed
// call goes straight back to the caller, which owns the fallback.
type Provider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

// NewProvider creates a Provider for the public Anthropic endpoint.
func NewProvider(cfg config.LLMConfig, logger *slog.Logger) *Provider {
	return newProvider(cfg, logger)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(cfg config.LLMConfig, baseURL string, logger *slog.Logger) *Provider {
	return newProvider(cfg, logger, option.WithBaseURL(baseURL))
}

func newProvider(cfg config.LLMConfig, logger *slog.Logger, extra ...option.RequestOption) *Provider {
	opts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}, extra...)

	return &Provider{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		timeout:   cfg.Timeout,
		log:       logger.With("adapter", "claude"),
	}
}

// Generate returns the concatenated text blocks of the model's reply.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		attrs := []any{slog.String("error", err.Error()), slog.Duration("duration", time.Since(start))}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			attrs = append(attrs, slog.Int("status", apiErr.StatusCode))
		}
		p.log.WarnContext(ctx, "claude request failed", attrs...)
		return "", fmt.Errorf("claude: messages.new: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("claude: empty response (stop_reason %s)", msg.StopReason)
	}

	p.log.DebugContext(ctx, "claude response",
		slog.String("model", p.model),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
		slog.Duration("duration", time.Since(start)),
	)
	return sb.String(), nil
}
