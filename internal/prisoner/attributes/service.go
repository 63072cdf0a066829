// Package attributes enforces the singleton attribute invariant: at most one
// active row per prisoner per attribute kind, with prior values retained as
// immutable inactive history.
package attributes

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"contact-registry/internal/prisoner"
	"contact-registry/internal/referencedata"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
	"contact-registry/pkg/requestcontext"
)

// Reconciler applies singleton attribute transitions across the independent
// create/update, migrate and merge entry points.
type Reconciler struct {
	store   prisoner.AttributeStore
	refdata prisoner.ReferenceDataChecker
	logger  *slog.Logger
}

// Option configures the Reconciler.
type Option func(*Reconciler)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

func New(store prisoner.AttributeStore, refdata prisoner.ReferenceDataChecker, opts ...Option) (*Reconciler, error) {
	if store == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "attribute store is required")
	}
	if refdata == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "reference data checker is required")
	}
	r := &Reconciler{store: store, refdata: refdata}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// CreateOrUpdate applies the incremental sync transition. Calling it twice
// with the same value writes once: the second call reports SyncUnchanged and
// touches no row.
func (r *Reconciler) CreateOrUpdate(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind, value, actingUser string) (prisoner.SyncOutcome, error) {
	var none prisoner.SyncOutcome

	if err := r.validate(ctx, prisonerNumber, kind, value); err != nil {
		return none, err
	}

	active, err := r.store.FindActive(ctx, prisonerNumber, kind)
	if err != nil {
		return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load active attribute")
	}

	if active != nil && active.Value == value {
		return prisoner.SyncOutcome{Status: prisoner.SyncUnchanged, ID: active.ID}, nil
	}

	newID, err := r.store.Insert(ctx, prisoner.PrisonerAttribute{
		PrisonerNumber: prisonerNumber,
		Kind:           kind,
		Value:          value,
		Active:         true,
		CreatedBy:      actingUser,
		CreatedTime:    requestcontext.Now(ctx),
	})
	if err != nil {
		return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert attribute")
	}

	if active == nil {
		return prisoner.SyncOutcome{Status: prisoner.SyncCreated, ID: newID}, nil
	}

	// Only the active flag flips; the history row keeps its original
	// value, author and timestamp.
	if err := r.store.Deactivate(ctx, active.ID); err != nil {
		return none, dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate attribute")
	}
	return prisoner.SyncOutcome{Status: prisoner.SyncUpdated, ID: newID, DeactivatedID: active.ID}, nil
}

// Current returns the active value for prisoner+kind. Not-found is an error
// here: sync consumers distinguish "never set" from transport failures.
func (r *Reconciler) Current(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind) (*prisoner.PrisonerAttribute, error) {
	if err := r.validateIdentity(prisonerNumber); err != nil {
		return nil, err
	}
	active, err := r.store.FindActive(ctx, prisonerNumber, kind)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load active attribute")
	}
	if active == nil {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "no %s recorded for prisoner %s", kind, prisonerNumber)
	}
	return active, nil
}

// MigratedRecord is one attribute value carried over by the bulk migration
// path, with its original audit fields preserved.
type MigratedRecord struct {
	Value       string
	CreatedBy   string
	CreatedTime time.Time
}

// Migrate destructively replaces every row for prisoner+kind with the
// supplied history (inactive) plus at most one current value (active). Used
// only by the initial load path; incremental sync goes through
// CreateOrUpdate.
func (r *Reconciler) Migrate(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind, history []MigratedRecord, current *MigratedRecord) ([]domain.AttributeID, error) {
	if err := r.validateIdentity(prisonerNumber); err != nil {
		return nil, err
	}
	for _, rec := range history {
		if err := r.validateValue(ctx, kind, rec.Value); err != nil {
			return nil, err
		}
	}
	if current != nil {
		if err := r.validateValue(ctx, kind, current.Value); err != nil {
			return nil, err
		}
	}

	if err := r.store.DeleteAll(ctx, prisonerNumber, kind); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear attribute rows")
	}

	var ids []domain.AttributeID
	for _, rec := range history {
		id, err := r.store.Insert(ctx, prisoner.PrisonerAttribute{
			PrisonerNumber: prisonerNumber,
			Kind:           kind,
			Value:          rec.Value,
			Active:         false,
			CreatedBy:      rec.CreatedBy,
			CreatedTime:    rec.CreatedTime,
		})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert migrated history")
		}
		ids = append(ids, id)
	}
	if current != nil {
		id, err := r.store.Insert(ctx, prisoner.PrisonerAttribute{
			PrisonerNumber: prisonerNumber,
			Kind:           kind,
			Value:          current.Value,
			Active:         true,
			CreatedBy:      current.CreatedBy,
			CreatedTime:    current.CreatedTime,
		})
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to insert migrated current value")
		}
		ids = append(ids, id)
	}

	if r.logger != nil {
		r.logger.InfoContext(ctx, "migrated attribute history",
			"prisonerNumber", prisonerNumber,
			"kind", kind,
			"rows", len(ids),
		)
	}
	return ids, nil
}

// MergeFrom copies the removing prisoner's active value onto the keeping
// prisoner when the keeping prisoner has none. When the keeping prisoner
// already holds an active row its value always wins and the removing
// prisoner's data is discarded (nil outcome, nothing written). The removing
// prisoner's own rows are left untouched here.
func (r *Reconciler) MergeFrom(ctx context.Context, keeping, removing domain.PrisonerNumber, kind prisoner.AttributeKind, actingUser string) (*prisoner.SyncOutcome, error) {
	keepingActive, err := r.store.FindActive(ctx, keeping, kind)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load keeping prisoner's attribute")
	}
	if keepingActive != nil {
		return nil, nil
	}

	removingActive, err := r.store.FindActive(ctx, removing, kind)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load removing prisoner's attribute")
	}
	if removingActive == nil {
		return nil, nil
	}

	newID, err := r.store.Insert(ctx, prisoner.PrisonerAttribute{
		PrisonerNumber: keeping,
		Kind:           kind,
		Value:          removingActive.Value,
		Active:         true,
		CreatedBy:      actingUser,
		CreatedTime:    requestcontext.Now(ctx),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to copy attribute onto keeping prisoner")
	}
	return &prisoner.SyncOutcome{Status: prisoner.SyncCreated, ID: newID}, nil
}

func (r *Reconciler) validate(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind, value string) error {
	if err := r.validateIdentity(prisonerNumber); err != nil {
		return err
	}
	return r.validateValue(ctx, kind, value)
}

func (r *Reconciler) validateIdentity(prisonerNumber domain.PrisonerNumber) error {
	if !prisonerNumber.IsValid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "invalid prisoner number %q", prisonerNumber)
	}
	return nil
}

// validateValue rejects the write before any row is touched: domestic status
// codes must exist in reference data, number-of-children must be a
// non-negative count.
func (r *Reconciler) validateValue(ctx context.Context, kind prisoner.AttributeKind, value string) error {
	switch kind {
	case prisoner.AttributeDomesticStatus:
		return r.refdata.Verify(ctx, referencedata.GroupDomesticStatus, value)
	case prisoner.AttributeNumberOfChildren:
		trimmed := strings.TrimSpace(value)
		if n, err := strconv.Atoi(trimmed); err != nil || n < 0 {
			return dErrors.Newf(dErrors.CodeBadRequest, "number of children must be a non-negative integer, got %q", value)
		}
		return nil
	default:
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown attribute kind %q", kind)
	}
}
