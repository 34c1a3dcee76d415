// Package assignment turns participant profiles into role assignments. It
// asks a generative-text provider first and falls back to a deterministic
// round-robin whenever the call or the parse fails, so callers always get a
// usable result.
package assignment

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"
)

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type metricsRecorder interface {
	ObserveAssignment(variant, source string, d time.Duration)
	ParseFailure(variant, kind string)
}

// Service produces role assignments for rooms and for ad-hoc member lists.
type Service struct {
	gen      generator
	metrics  metricsRecorder
	log      *slog.Logger
	language string
	now      func() time.Time
	intn     func(n int) int
}

// NewService creates an assignment Service. language is the language the
// model is asked to answer in.
func NewService(
	log *slog.Logger,
	gen generator,
	metrics metricsRecorder,
	language string,
) *Service {
	if language == "" {
		language = "Japanese"
	}
	return &Service{
		gen:      gen,
		metrics:  metrics,
		log:      log.With("service", "assignment"),
		language: language,
		now:      func() time.Time { return time.Now().UTC() },
		intn:     rand.IntN,
	}
}
