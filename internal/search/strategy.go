package search

import (
	"strings"

	dErrors "contact-registry/pkg/domain-errors"
	"contact-registry/pkg/phonetic"
)

// Selector maps a MatchQuery to the ordered list of matching tiers to
// attempt. The modes are mutually exclusive: a sounds-like query runs only
// the phonetic tier, anything else runs exact with a partial fallback.
// Phonetic is never reached by falling back from a failed exact search.
type Selector struct {
	keyer phonetic.Keyer
}

func NewSelector(keyer phonetic.Keyer) *Selector {
	return &Selector{keyer: keyer}
}

// Plan validates the query and returns the tier filters to attempt in order.
// An empty last name is a contract violation, reported before any store
// access.
func (s *Selector) Plan(q MatchQuery) ([]NameFilter, error) {
	if strings.TrimSpace(q.LastName) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "lastName is required")
	}

	if q.SoundsLike {
		return []NameFilter{s.filter(TierPhonetic, q)}, nil
	}
	return []NameFilter{
		s.filter(TierExact, q),
		s.filter(TierPartial, q),
	}, nil
}

// filter normalizes the query for one tier: lowercased trimmed names for
// exact/partial, phonetic keys for sounds-like. Unsupplied fields stay empty
// and act as wildcards.
func (s *Selector) filter(tier Tier, q MatchQuery) NameFilter {
	f := NameFilter{Tier: tier}

	last := strings.TrimSpace(q.LastName)
	first := strings.TrimSpace(q.FirstName)
	middle := strings.TrimSpace(q.MiddleNames)

	if tier == TierPhonetic {
		f.LastNameKey = s.keyer.Key(last)
		if first != "" {
			f.FirstNameKey = s.keyer.Key(first)
		}
		if middle != "" {
			f.MiddleNamesKey = s.keyer.Key(middle)
		}
		return f
	}

	f.LastName = strings.ToLower(last)
	f.FirstName = strings.ToLower(first)
	f.MiddleNames = strings.ToLower(middle)
	return f
}
