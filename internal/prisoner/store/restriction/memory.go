package restriction

import (
	"context"
	"sort"
	"sync"

	"contact-registry/internal/prisoner"
	"contact-registry/pkg/domain"
)

// InMemoryStore holds restriction rows for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	rows   map[domain.RestrictionID]prisoner.PrisonerRestriction
	nextID int64
}

func New() *InMemoryStore {
	return &InMemoryStore{rows: make(map[domain.RestrictionID]prisoner.PrisonerRestriction)}
}

func (s *InMemoryStore) ListByPrisoner(_ context.Context, prisonerNumber domain.PrisonerNumber) ([]prisoner.PrisonerRestriction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []prisoner.PrisonerRestriction
	for _, row := range s.rows {
		if row.PrisonerNumber == prisonerNumber {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Insert(_ context.Context, restriction prisoner.PrisonerRestriction) (domain.RestrictionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	restriction.ID = domain.RestrictionID(s.nextID)
	s.rows[restriction.ID] = restriction
	return restriction.ID, nil
}

func (s *InMemoryStore) DeleteAllForPrisoner(_ context.Context, prisonerNumber domain.PrisonerNumber) ([]domain.RestrictionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted []domain.RestrictionID
	for id, row := range s.rows {
		if row.PrisonerNumber == prisonerNumber {
			deleted = append(deleted, id)
			delete(s.rows, id)
		}
	}
	sort.Slice(deleted, func(i, j int) bool { return deleted[i] < deleted[j] })
	return deleted, nil
}
