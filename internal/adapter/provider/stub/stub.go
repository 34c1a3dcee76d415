package stub

import (
	"context"

	"github.com/heartmarshall/icebreaker-backend/internal/domain"
)

// Provider stands in when no API key is configured. Every call fails with
// ErrProviderUnavailable, so callers always take their fallback path.
type Provider struct{}

func NewProvider() *Provider { return &Provider{} }

func (p *Provider) Generate(context.Context, string) (string, error) {
	return "", domain.ErrProviderUnavailable
}
