package search

import (
	"context"
	"time"

	"contact-registry/pkg/domain"
)

// ContactStore reads current contact rows.
type ContactStore interface {
	// FindIDs returns ids of current contacts matching the filter, and the
	// optional exact date-of-birth, in ascending id order.
	FindIDs(ctx context.Context, filter NameFilter, dateOfBirth *time.Time) ([]domain.ContactID, error)

	// Existing returns the subset of ids whose current row exists and
	// satisfies the optional date-of-birth filter, in ascending id order.
	// Used to intersect historical candidates with live contacts.
	Existing(ctx context.Context, ids []domain.ContactID, dateOfBirth *time.Time) ([]domain.ContactID, error)

	// SortIDs reorders ids by the given key (ties broken by ascending id).
	SortIDs(ctx context.Context, ids []domain.ContactID, key SortKey) ([]domain.ContactID, error)
}

// RevisionStore reads the append-only audit log of contact revisions. It is
// read-only to this service.
type RevisionStore interface {
	// FindContactIDs returns the distinct contact ids whose INSERT/UPDATE
	// revisions match the filter, scanning at most rowLimit revision rows
	// (most recent first) before the distinct projection.
	FindContactIDs(ctx context.Context, filter NameFilter, rowLimit int) ([]domain.ContactID, error)
}
