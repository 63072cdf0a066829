package attribute

import (
	"context"
	"sort"
	"sync"

	"contact-registry/internal/prisoner"
	"contact-registry/pkg/domain"
)

// InMemoryStore holds attribute rows for tests and local runs.
type InMemoryStore struct {
	mu     sync.RWMutex
	rows   map[domain.AttributeID]prisoner.PrisonerAttribute
	nextID int64
}

func New() *InMemoryStore {
	return &InMemoryStore{rows: make(map[domain.AttributeID]prisoner.PrisonerAttribute)}
}

func (s *InMemoryStore) FindActive(_ context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind) (*prisoner.PrisonerAttribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.rows {
		if row.PrisonerNumber == prisonerNumber && row.Kind == kind && row.Active {
			copy := row
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *InMemoryStore) Insert(_ context.Context, attr prisoner.PrisonerAttribute) (domain.AttributeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	attr.ID = domain.AttributeID(s.nextID)
	s.rows[attr.ID] = attr
	return attr.ID, nil
}

func (s *InMemoryStore) Deactivate(_ context.Context, id domain.AttributeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[id]
	if !ok {
		return nil
	}
	row.Active = false
	s.rows[id] = row
	return nil
}

func (s *InMemoryStore) DeleteAll(_ context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.rows {
		if row.PrisonerNumber == prisonerNumber && row.Kind == kind {
			delete(s.rows, id)
		}
	}
	return nil
}

// Get returns one row by id. Test helper.
func (s *InMemoryStore) Get(id domain.AttributeID) (prisoner.PrisonerAttribute, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	return row, ok
}

// ListByPrisoner returns every row for prisoner+kind in ascending id order.
// Test helper.
func (s *InMemoryStore) ListByPrisoner(prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind) []prisoner.PrisonerAttribute {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []prisoner.PrisonerAttribute
	for _, row := range s.rows {
		if row.PrisonerNumber == prisonerNumber && row.Kind == kind {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
