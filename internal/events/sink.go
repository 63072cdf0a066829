package events

import "context"

// Sink accepts events for eventual delivery. The outbox stores implement it;
// from the emitting side this is fire-after-commit.
type Sink interface {
	Emit(ctx context.Context, event Event) error
}

// OutboxStore is a Sink whose accepted events can be drained by the worker.
type OutboxStore interface {
	Sink

	// Pending returns up to limit unpublished events, oldest first.
	Pending(ctx context.Context, limit int) ([]Event, error)

	// MarkPublished records that an event left the outbox. Events already
	// marked are ignored (the worker may retry a batch after a partial
	// failure, so delivery is at-least-once).
	MarkPublished(ctx context.Context, event Event) error
}
