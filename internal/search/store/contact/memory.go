package contact

import (
	"context"
	"sort"
	"sync"
	"time"

	"contact-registry/internal/search"
	"contact-registry/pkg/domain"
	"contact-registry/pkg/phonetic"
)

// InMemoryStore holds current contact rows for tests and local runs. Put
// precomputes the phonetic key columns the way persistence does in
// production.
type InMemoryStore struct {
	mu    sync.RWMutex
	rows  map[domain.ContactID]search.Contact
	keyer phonetic.Keyer
}

func New(keyer phonetic.Keyer) *InMemoryStore {
	return &InMemoryStore{
		rows:  make(map[domain.ContactID]search.Contact),
		keyer: keyer,
	}
}

// Put upserts a contact, deriving its phonetic keys at write time.
func (s *InMemoryStore) Put(c search.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.LastNameKey = s.keyer.Key(c.LastName)
	c.FirstNameKey = s.keyer.Key(c.FirstName)
	c.MiddleNamesKey = s.keyer.Key(c.MiddleNames)
	s.rows[c.ID] = c
}

// Delete removes a contact row.
func (s *InMemoryStore) Delete(id domain.ContactID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
}

func (s *InMemoryStore) FindIDs(_ context.Context, filter search.NameFilter, dateOfBirth *time.Time) ([]domain.ContactID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []domain.ContactID
	for id, row := range s.rows {
		if !filter.MatchesContact(row) {
			continue
		}
		if !dobMatches(row.DateOfBirth, dateOfBirth) {
			continue
		}
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

func (s *InMemoryStore) Existing(_ context.Context, candidates []domain.ContactID, dateOfBirth *time.Time) ([]domain.ContactID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []domain.ContactID
	for _, id := range candidates {
		row, ok := s.rows[id]
		if !ok {
			continue
		}
		if !dobMatches(row.DateOfBirth, dateOfBirth) {
			continue
		}
		ids = append(ids, id)
	}
	sortIDs(ids)
	return ids, nil
}

func (s *InMemoryStore) SortIDs(_ context.Context, ids []domain.ContactID, key search.SortKey) ([]domain.ContactID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]domain.ContactID{}, ids...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := s.rows[out[i]], s.rows[out[j]]
		switch key {
		case search.SortByLastName:
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
		case search.SortByFirstName:
			if a.FirstName != b.FirstName {
				return a.FirstName < b.FirstName
			}
		case search.SortByDateOfBirth:
			at, bt := dobOrZero(a.DateOfBirth), dobOrZero(b.DateOfBirth)
			if !at.Equal(bt) {
				return at.Before(bt)
			}
		}
		return out[i] < out[j]
	})
	return out, nil
}

func dobMatches(stored, want *time.Time) bool {
	if want == nil {
		return true
	}
	return stored != nil && stored.Equal(*want)
}

func dobOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func sortIDs(ids []domain.ContactID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
