// Package worker runs background tasks on a bounded queue served by a fixed
// number of goroutines.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"golang.org/x/sync/errgroup"
)

var (
	ErrQueueFull = errors.New("worker: queue full")
	ErrClosed    = errors.New("worker: pool closed")
)

// Task is a unit of background work. ctx is canceled only when Shutdown
// gives up waiting.
type Task func(ctx context.Context)

// Pool executes submitted tasks with bounded concurrency.
type Pool struct {
	tasks  chan Task
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// New starts concurrency workers reading from a queue of queueSize slots.
func New(concurrency, queueSize int, logger *slog.Logger) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		tasks:  make(chan Task, queueSize),
		group:  &errgroup.Group{},
		ctx:    ctx,
		cancel: cancel,
		log:    logger.With("component", "worker"),
	}

	for i := 0; i < concurrency; i++ {
		p.group.Go(func() error {
			for task := range p.tasks {
				p.run(task)
			}
			return nil
		})
	}
	return p
}

// Submit enqueues a task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrClosed
	}
	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown stops accepting tasks and waits for queued and running ones to
// finish. If ctx expires first, running tasks see their context canceled
// and Shutdown returns ctx.Err() without waiting further.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return fmt.Errorf("worker: drain: %w", ctx.Err())
	}
}

func (p *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("task panicked",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	task(p.ctx)
}
