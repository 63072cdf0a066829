package search

import (
	"context"
	"sort"

	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
)

// Resolver executes planned tiers against the current and historical read
// stores and produces a deduplicated candidate id set. Tiers are attempted
// in plan order; the first tier yielding any candidate wins.
type Resolver struct {
	contacts  ContactStore
	revisions RevisionStore

	// historyRowLimit bounds revision rows scanned per historical lookup.
	// Beyond it the result is a correct "most recent revisions first"
	// subset, not exhaustive; this is a documented performance guard.
	historyRowLimit int
}

func NewResolver(contacts ContactStore, revisions RevisionStore, historyRowLimit int) (*Resolver, error) {
	if contacts == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "contact store is required")
	}
	if revisions == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "revision store is required")
	}
	if historyRowLimit <= 0 {
		historyRowLimit = 10000
	}
	return &Resolver{
		contacts:        contacts,
		revisions:       revisions,
		historyRowLimit: historyRowLimit,
	}, nil
}

// Resolve runs the planned tiers and returns the deduplicated candidate ids
// in ascending order, plus the tier that produced them (the last attempted
// tier when nothing matched).
func (r *Resolver) Resolve(ctx context.Context, q MatchQuery, plan []NameFilter) ([]domain.ContactID, Tier, error) {
	var tier Tier
	for _, filter := range plan {
		tier = filter.Tier
		ids, err := r.resolveTier(ctx, q, filter)
		if err != nil {
			return nil, tier, err
		}
		if len(ids) > 0 {
			return ids, tier, nil
		}
	}
	return nil, tier, nil
}

// resolveTier unions the current variant with the historical variant of one
// tier. Historical candidates are projected to distinct contact ids and then
// intersected with live contact rows satisfying the date-of-birth filter;
// the date of birth lives on the current record, not the revision.
func (r *Resolver) resolveTier(ctx context.Context, q MatchQuery, filter NameFilter) ([]domain.ContactID, error) {
	current, err := r.contacts.FindIDs(ctx, filter, q.DateOfBirth)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "current contact lookup failed")
	}

	seen := make(map[domain.ContactID]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}

	if q.IncludeHistory {
		revised, err := r.revisions.FindContactIDs(ctx, filter, r.historyRowLimit)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "historical contact lookup failed")
		}
		alive, err := r.contacts.Existing(ctx, revised, q.DateOfBirth)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "historical candidate check failed")
		}
		for _, id := range alive {
			seen[id] = struct{}{}
		}
	}

	ids := make([]domain.ContactID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
