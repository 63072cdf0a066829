package search

import "strings"

// MatchesContact reports whether a current contact row satisfies the filter.
// Shared by the in-memory store and tests; the postgres store expresses the
// same predicate in SQL.
func (f NameFilter) MatchesContact(c Contact) bool {
	return f.matches(nameFields{
		last:      c.LastName,
		first:     c.FirstName,
		middle:    c.MiddleNames,
		lastKey:   c.LastNameKey,
		firstKey:  c.FirstNameKey,
		middleKey: c.MiddleNamesKey,
	})
}

// MatchesRevision reports whether an audited revision satisfies the filter.
func (f NameFilter) MatchesRevision(rev ContactRevision) bool {
	return f.matches(nameFields{
		last:      rev.LastName,
		first:     rev.FirstName,
		middle:    rev.MiddleNames,
		lastKey:   rev.LastNameKey,
		firstKey:  rev.FirstNameKey,
		middleKey: rev.MiddleNamesKey,
	})
}

type nameFields struct {
	last, first, middle          string
	lastKey, firstKey, middleKey string
}

func (f NameFilter) matches(n nameFields) bool {
	switch f.Tier {
	case TierPhonetic:
		return keyMatches(f.LastNameKey, n.lastKey) &&
			keyMatches(f.FirstNameKey, n.firstKey) &&
			keyMatches(f.MiddleNamesKey, n.middleKey)
	case TierPartial:
		return containsFold(n.last, f.LastName) &&
			containsFold(n.first, f.FirstName) &&
			containsFold(n.middle, f.MiddleNames)
	default:
		return equalFold(n.last, f.LastName) &&
			equalFold(n.first, f.FirstName) &&
			equalFold(n.middle, f.MiddleNames)
	}
}

// Filter fields are already lowercased (or empty for wildcard) by the
// selector; only the stored side needs folding here.

func equalFold(stored, want string) bool {
	return want == "" || strings.ToLower(stored) == want
}

func containsFold(stored, want string) bool {
	return want == "" || strings.Contains(strings.ToLower(stored), want)
}

func keyMatches(wantKey, storedKey string) bool {
	return wantKey == "" || storedKey == wantKey
}
