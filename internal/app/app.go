package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/icebreaker-backend/internal/config"
	"github.com/heartmarshall/icebreaker-backend/internal/metrics"
	"github.com/heartmarshall/icebreaker-backend/internal/service/assignment"
	"github.com/heartmarshall/icebreaker-backend/internal/service/room"
	"github.com/heartmarshall/icebreaker-backend/internal/transport/middleware"
	"github.com/heartmarshall/icebreaker-backend/internal/transport/rest"
	"github.com/heartmarshall/icebreaker-backend/internal/worker"
)

// App is the assembled service: store, generation workers and HTTP handler.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	store   Store
	pool    *worker.Pool
	metrics *metrics.Metrics
	handler http.Handler
}

// New wires services and transport on top of an open store and generator.
func New(cfg *config.Config, logger *slog.Logger, store Store, gen Generator) *App {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	pool := worker.New(cfg.Worker.Concurrency, cfg.Worker.QueueSize, logger)

	assigner := assignment.NewService(logger, gen, m, cfg.LLM.ResponseLanguage)
	rooms := room.NewService(logger, store, assigner, pool, m, cfg.Room)

	routerCfg := rest.RouterConfig{
		Rooms:      rest.NewRoomHandler(rooms, logger),
		Roles:      rest.NewRoleHandler(assigner, logger),
		Health:     rest.NewHealthHandler(store, cfg.Store.Driver, BuildVersion()),
		Middleware: httpMiddleware(cfg, logger, m),
	}
	if m != nil {
		routerCfg.Metrics = m.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	return &App{
		cfg:     cfg,
		log:     logger,
		store:   store,
		pool:    pool,
		metrics: m,
		handler: rest.NewRouter(routerCfg),
	}
}

// httpMiddleware returns the request stack, outermost first. Metrics sits
// outside Recovery so requests that panic are still counted as 500s.
func httpMiddleware(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) []middleware.Middleware {
	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logger(logger),
	}
	if m != nil {
		mws = append(mws, middleware.Metrics(m))
	}
	return append(mws,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	)
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Shutdown drains generation tasks, then closes the store. Results of tasks
// that finish during the drain are still written.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.pool.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain workers: %w", err))
	}
	if err := a.store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

// Run is the application entry point. It loads configuration, connects the
// store, serves HTTP until ctx is cancelled and then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("store", cfg.Store.Driver),
	)

	store, err := OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	a := New(cfg, logger, store, NewGenerator(cfg.LLM, logger))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      a.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		httpErr := srv.Shutdown(shutdownCtx)
		if httpErr != nil {
			httpErr = fmt.Errorf("http shutdown: %w", httpErr)
		}
		return errors.Join(httpErr, a.Shutdown(shutdownCtx))
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
