package revision

import (
	"context"
	"sort"
	"sync"

	"contact-registry/internal/search"
	"contact-registry/pkg/domain"
	"contact-registry/pkg/phonetic"
)

// InMemoryStore holds audited contact revisions for tests. Append-only, as
// the production audit tables are.
type InMemoryStore struct {
	mu    sync.RWMutex
	rows  []search.ContactRevision
	keyer phonetic.Keyer
}

func New(keyer phonetic.Keyer) *InMemoryStore {
	return &InMemoryStore{keyer: keyer}
}

// Append records a revision, deriving phonetic keys the way the audited
// write path does.
func (s *InMemoryStore) Append(rev search.ContactRevision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rev.LastNameKey = s.keyer.Key(rev.LastName)
	rev.FirstNameKey = s.keyer.Key(rev.FirstName)
	rev.MiddleNamesKey = s.keyer.Key(rev.MiddleNames)
	s.rows = append(s.rows, rev)
}

func (s *InMemoryStore) FindContactIDs(_ context.Context, filter search.NameFilter, rowLimit int) ([]domain.ContactID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Most recent revisions first, so the row limiter keeps the freshest
	// slice of history when it truncates the scan.
	scanned := 0
	seen := make(map[domain.ContactID]struct{})
	for i := len(s.rows) - 1; i >= 0 && scanned < rowLimit; i-- {
		rev := s.rows[i]
		if rev.Type == search.RevisionDelete {
			continue
		}
		if !filter.MatchesRevision(rev) {
			continue
		}
		scanned++
		seen[rev.ContactID] = struct{}{}
	}

	ids := make([]domain.ContactID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
