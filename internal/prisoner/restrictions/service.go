// Package restrictions computes the create/delete diff between a desired
// restriction set and the stored set for one or two prisoners.
package restrictions

import (
	"context"
	"log/slog"

	"contact-registry/internal/prisoner"
	"contact-registry/internal/referencedata"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
	"contact-registry/pkg/requestcontext"
)

// maxCommentLength bounds the free-text comment carried on a restriction.
const maxCommentLength = 240

// Differ implements the reset and merge diffs. Both validate the full input
// before the first write, so a failure never leaves a partial set behind;
// callers additionally run each operation inside one storage transaction.
type Differ struct {
	store   prisoner.RestrictionStore
	refdata prisoner.ReferenceDataChecker
	logger  *slog.Logger
}

// Option configures the Differ.
type Option func(*Differ)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Differ) {
		d.logger = logger
	}
}

func New(store prisoner.RestrictionStore, refdata prisoner.ReferenceDataChecker, opts ...Option) (*Differ, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "restriction store is required")
	}
	if refdata == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "reference data checker is required")
	}
	d := &Differ{store: store, refdata: refdata}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// List returns the prisoner's stored restrictions in ascending id order. An
// empty set is a normal answer, not an error.
func (d *Differ) List(ctx context.Context, prisonerNumber domain.PrisonerNumber) ([]prisoner.PrisonerRestriction, error) {
	if !prisonerNumber.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "invalid prisoner number %q", prisonerNumber)
	}
	rows, err := d.store.ListByPrisoner(ctx, prisonerNumber)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list restrictions")
	}
	return rows, nil
}

// Reset replaces the prisoner's entire stored set with the desired set.
// This is deliberately an unconditional replace-all, not a value-level diff:
// a restriction whose content is unchanged is still deleted and recreated
// under a new id. Consumers relying on restriction ids must treat a reset as
// full turnover.
func (d *Differ) Reset(ctx context.Context, prisonerNumber domain.PrisonerNumber, desired []prisoner.RestrictionInput, actingUser string) (prisoner.RestrictionsDiff, error) {
	var none prisoner.RestrictionsDiff

	if !prisonerNumber.IsValid() {
		return none, dErrors.Newf(dErrors.CodeBadRequest, "invalid prisoner number %q", prisonerNumber)
	}
	for _, input := range desired {
		if err := d.validateInput(ctx, input); err != nil {
			return none, err
		}
	}

	deleted, err := d.store.DeleteAllForPrisoner(ctx, prisonerNumber)
	if err != nil {
		return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete existing restrictions")
	}

	created := make([]domain.RestrictionID, 0, len(desired))
	now := requestcontext.Now(ctx)
	for _, input := range desired {
		id, err := d.store.Insert(ctx, prisoner.PrisonerRestriction{
			PrisonerNumber:     prisonerNumber,
			RestrictionType:    input.RestrictionType,
			EffectiveDate:      input.EffectiveDate,
			ExpiryDate:         input.ExpiryDate,
			CommentText:        input.CommentText,
			AuthorisedUsername: input.AuthorisedUsername,
			CreatedBy:          actingUser,
			CreatedTime:        now,
		})
		if err != nil {
			return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert restriction")
		}
		created = append(created, id)
	}

	if d.logger != nil {
		d.logger.InfoContext(ctx, "reset restrictions",
			"prisonerNumber", prisonerNumber,
			"deleted", len(deleted),
			"created", len(created),
		)
	}
	return prisoner.RestrictionsDiff{
		Created:    created,
		Deleted:    deleted,
		WasDeleted: len(deleted) > 0,
	}, nil
}

// Merge moves every restriction row from the removing prisoner onto the
// keeping prisoner: removing's rows are deleted and re-inserted under the
// keeping prisoner number as new rows, leaving the keeping prisoner's
// pre-existing rows untouched. Rows being moved were validated when first
// written, so no reference-data check reruns here.
func (d *Differ) Merge(ctx context.Context, keeping, removing domain.PrisonerNumber, actingUser string) (prisoner.RestrictionsDiff, error) {
	var none prisoner.RestrictionsDiff

	moving, err := d.store.ListByPrisoner(ctx, removing)
	if err != nil {
		return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load removing prisoner's restrictions")
	}

	deleted, err := d.store.DeleteAllForPrisoner(ctx, removing)
	if err != nil {
		return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete removing prisoner's restrictions")
	}

	created := make([]domain.RestrictionID, 0, len(moving))
	now := requestcontext.Now(ctx)
	for _, row := range moving {
		id, err := d.store.Insert(ctx, prisoner.PrisonerRestriction{
			PrisonerNumber:     keeping,
			RestrictionType:    row.RestrictionType,
			EffectiveDate:      row.EffectiveDate,
			ExpiryDate:         row.ExpiryDate,
			CommentText:        row.CommentText,
			AuthorisedUsername: row.AuthorisedUsername,
			CreatedBy:          actingUser,
			CreatedTime:        now,
		})
		if err != nil {
			return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to move restriction to keeping prisoner")
		}
		created = append(created, id)
	}

	return prisoner.RestrictionsDiff{
		Created:    created,
		Deleted:    deleted,
		WasUpdated: len(moving) > 0,
		WasDeleted: len(deleted) > 0,
	}, nil
}

func (d *Differ) validateInput(ctx context.Context, input prisoner.RestrictionInput) error {
	if err := d.refdata.Verify(ctx, referencedata.GroupRestrictionType, input.RestrictionType); err != nil {
		return err
	}
	if input.EffectiveDate.IsZero() {
		return dErrors.Newf(dErrors.CodeBadRequest, "restriction %q requires an effective date", input.RestrictionType)
	}
	if len(input.CommentText) > maxCommentLength {
		return dErrors.Newf(dErrors.CodeBadRequest, "comment text must be %d characters or fewer", maxCommentLength)
	}
	if input.AuthorisedUsername == "" {
		return dErrors.Newf(dErrors.CodeBadRequest, "restriction %q requires an authorising username", input.RestrictionType)
	}
	return nil
}
