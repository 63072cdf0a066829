package memory

import (
	"context"
	"sync"

	"contact-registry/internal/referencedata"
)

type key struct {
	group referencedata.Group
	code  string
}

// Store is an in-memory reference data store for tests and local runs.
type Store struct {
	mu    sync.RWMutex
	codes map[key]struct{}
}

func New() *Store {
	return &Store{codes: make(map[key]struct{})}
}

// Seed registers codes under a group.
func (s *Store) Seed(group referencedata.Group, codes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, code := range codes {
		s.codes[key{group: group, code: code}] = struct{}{}
	}
}

func (s *Store) Exists(_ context.Context, group referencedata.Group, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.codes[key{group: group, code: code}]
	return ok, nil
}
