// Package worker drains the event outbox to the message bus.
package worker

import (
	"context"
	"log/slog"
	"time"

	"contact-registry/internal/events"
)

// Publisher delivers one event to the bus.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Worker polls the outbox and publishes pending events in order. A publish
// failure stops the current batch; the unpublished remainder is retried on
// the next tick, so delivery is at-least-once and never reordered within a
// poll cycle.
type Worker struct {
	store     events.OutboxStore
	publisher Publisher
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// Option configures the Worker.
type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func WithInterval(interval time.Duration) Option {
	return func(w *Worker) {
		w.interval = interval
	}
}

func WithBatchSize(size int) Option {
	return func(w *Worker) {
		w.batchSize = size
	}
}

func New(store events.OutboxStore, publisher Publisher, opts ...Option) *Worker {
	w := &Worker{
		store:     store,
		publisher: publisher,
		interval:  time.Second,
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.Drain(ctx); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "outbox drain failed", "error", err)
			}
		}
	}
}

// Drain publishes every currently pending event. Exported so tests and
// shutdown hooks can flush without the ticker.
func (w *Worker) Drain(ctx context.Context) error {
	for {
		pending, err := w.store.Pending(ctx, w.batchSize)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		for _, ev := range pending {
			if err := w.publisher.Publish(ctx, ev); err != nil {
				return err
			}
			if err := w.store.MarkPublished(ctx, ev); err != nil {
				return err
			}
		}
		if len(pending) < w.batchSize {
			return nil
		}
	}
}
