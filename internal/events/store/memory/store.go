package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"contact-registry/internal/events"
)

// Store is an in-memory outbox for tests and local runs.
type Store struct {
	mu        sync.RWMutex
	pending   []events.Event
	published map[uuid.UUID]struct{}
}

func New() *Store {
	return &Store{published: make(map[uuid.UUID]struct{})}
}

func (s *Store) Emit(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, event)
	return nil
}

func (s *Store) Pending(_ context.Context, limit int) ([]events.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]events.Event, 0, limit)
	for _, ev := range s.pending {
		if _, done := s.published[ev.ID]; done {
			continue
		}
		out = append(out, ev)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkPublished(_ context.Context, event events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published[event.ID] = struct{}{}
	return nil
}

// All returns every emitted event in emission order, published or not.
// Test helper for asserting event sets.
func (s *Store) All() []events.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]events.Event{}, s.pending...)
}

// Clear empties the outbox between tests.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.published = make(map[uuid.UUID]struct{})
}
