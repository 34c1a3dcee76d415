package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/icebreaker-backend/internal/transport/middleware"
)

// RouterConfig wires handlers and middleware into the HTTP surface.
type RouterConfig struct {
	Rooms  *RoomHandler
	Roles  *RoleHandler
	Health *HealthHandler

	// Metrics is served at MetricsPath when both are set.
	Metrics     http.Handler
	MetricsPath string

	// Middleware runs on every request, outermost first. It is mounted with
	// chi's Use so route patterns are visible to it.
	Middleware []middleware.Middleware
}

// NewRouter builds the chi router for the whole API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	for _, mw := range cfg.Middleware {
		r.Use(mw)
	}

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/live", cfg.Health.Live)
	r.Get("/ready", cfg.Health.Ready)
	r.Get("/api/health", cfg.Health.Health)

	r.Mount("/rooms", cfg.Rooms.Routes())
	r.Mount("/api/roles", cfg.Roles.Routes())

	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.Metrics)
	}
	return r
}
