package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"contact-registry/internal/events"
	txcontext "contact-registry/internal/platform/tx"
)

// Store implements the outbox pattern over PostgreSQL. Emit participates in
// any transaction carried on the context, so an aborted merge never leaves
// orphan events behind.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Emit(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	const query = `
		INSERT INTO domain_event_outbox (id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4)`

	if tx, ok := txcontext.From(ctx); ok {
		_, err = tx.Exec(ctx, query, event.ID, string(event.Kind), payload, event.OccurredAt)
	} else {
		_, err = s.pool.Exec(ctx, query, event.ID, string(event.Kind), payload, event.OccurredAt)
	}
	if err != nil {
		return fmt.Errorf("append event to outbox: %w", err)
	}
	return nil
}

func (s *Store) Pending(ctx context.Context, limit int) ([]events.Event, error) {
	const query = `
		SELECT payload FROM domain_event_outbox
		WHERE published_at IS NULL
		ORDER BY created_at, id
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}
	defer rows.Close()

	var out []events.Event
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan pending event: %w", err)
		}
		var ev events.Event
		if err := json.Unmarshal(payload, &ev); err != nil {
			return nil, fmt.Errorf("decode pending event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) MarkPublished(ctx context.Context, event events.Event) error {
	const query = `
		UPDATE domain_event_outbox
		SET published_at = now()
		WHERE id = $1 AND published_at IS NULL`
	if _, err := s.pool.Exec(ctx, query, event.ID); err != nil {
		return fmt.Errorf("mark event published: %w", err)
	}
	return nil
}
