package prisoner

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"contact-registry/internal/referencedata"
	"contact-registry/pkg/domain"
)

// AttributeStore persists singleton attribute rows.
type AttributeStore interface {
	// FindActive returns the single active row for prisoner+kind, or nil.
	FindActive(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind AttributeKind) (*PrisonerAttribute, error)

	// Insert writes a new row and returns its allocated id.
	Insert(ctx context.Context, attr PrisonerAttribute) (domain.AttributeID, error)

	// Deactivate flips Active to false on one row. Every other field keeps
	// the value it was originally written with.
	Deactivate(ctx context.Context, id domain.AttributeID) error

	// DeleteAll removes every row (active and history) for prisoner+kind.
	// Used only by the migrate path.
	DeleteAll(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind AttributeKind) error
}

// RestrictionStore persists restriction rows.
type RestrictionStore interface {
	// ListByPrisoner returns all rows for a prisoner in ascending id order.
	ListByPrisoner(ctx context.Context, prisonerNumber domain.PrisonerNumber) ([]PrisonerRestriction, error)

	// Insert writes a new row and returns its allocated id.
	Insert(ctx context.Context, restriction PrisonerRestriction) (domain.RestrictionID, error)

	// DeleteAllForPrisoner removes every row for a prisoner and returns the
	// removed ids in ascending order.
	DeleteAllForPrisoner(ctx context.Context, prisonerNumber domain.PrisonerNumber) ([]domain.RestrictionID, error)
}

// ReferenceDataChecker validates codes before writes. Verify returns a
// not-found domain error for unknown codes.
type ReferenceDataChecker interface {
	Verify(ctx context.Context, group referencedata.Group, code string) error
}
