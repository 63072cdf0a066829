// Package merge composes the attribute reconciler and restriction differ
// into the two top-level sync operations, and decides exactly which domain
// events each observable transition produces.
package merge

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"contact-registry/internal/events"
	"contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/attributes"
	prisonermetrics "contact-registry/internal/prisoner/metrics"
	"contact-registry/internal/prisoner/restrictions"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
	"contact-registry/pkg/requestcontext"
)

var tracer = otel.Tracer("contact-registry/merge")

// Orchestrator runs merge and reset operations inside one transaction and
// hands the resulting events to the sink only after every write has been
// applied, so events always reflect committed state. Component errors
// propagate unmodified; nothing is swallowed or downgraded here.
type Orchestrator struct {
	attributes   *attributes.Reconciler
	restrictions *restrictions.Differ
	sink         events.Sink
	runner       tx.Runner
	logger       *slog.Logger
	metrics      *prisonermetrics.Metrics
}

// Option configures the Orchestrator.
type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(m *prisonermetrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

func New(attrs *attributes.Reconciler, differ *restrictions.Differ, sink events.Sink, runner tx.Runner, opts ...Option) (*Orchestrator, error) {
	if attrs == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "attribute reconciler is required")
	}
	if differ == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "restriction differ is required")
	}
	if sink == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "event sink is required")
	}
	if runner == nil {
		runner = tx.NoopRunner{}
	}
	o := &Orchestrator{
		attributes:   attrs,
		restrictions: differ,
		sink:         sink,
		runner:       runner,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// MergePrisoners absorbs the removing prisoner's records into the keeping
// prisoner. Attributes follow "keeping always wins": a CREATED event fires
// only for an attribute actually copied, never for a discarded or unchanged
// one. Every restriction row moved produces one DELETED event (under the
// removing prisoner) and one CREATED event (under the keeping prisoner).
func (o *Orchestrator) MergePrisoners(ctx context.Context, keeping, removing domain.PrisonerNumber, source domain.Source, actingUser string) (*prisoner.MergeOutcome, error) {
	ctx, span := tracer.Start(ctx, "merge.MergePrisoners")
	defer span.End()
	span.SetAttributes(attribute.String("merge.source", string(source)))

	if err := validateMergeRequest(keeping, removing, actingUser); err != nil {
		return nil, err
	}

	outcome := &prisoner.MergeOutcome{}
	var buffered []events.Event

	err := o.runner.RunInTx(ctx, func(txCtx context.Context) error {
		now := requestcontext.Now(txCtx)

		for _, kind := range prisoner.Kinds() {
			attrOutcome, err := o.attributes.MergeFrom(txCtx, keeping, removing, kind, actingUser)
			if err != nil {
				return err
			}
			if attrOutcome == nil {
				continue
			}
			setAttributeOutcome(outcome, kind, attrOutcome)
			ev := events.NewEvent(createdKindFor(kind), int64(attrOutcome.ID), keeping, source, actingUser, now)
			ev.RemovedPrisonerNumber = removing
			buffered = append(buffered, ev)
		}

		diff, err := o.restrictions.Merge(txCtx, keeping, removing, actingUser)
		if err != nil {
			return err
		}
		outcome.Restrictions = diff

		for _, id := range diff.Deleted {
			ev := events.NewEvent(events.KindRestrictionDeleted, int64(id), removing, source, actingUser, now)
			ev.RemovedPrisonerNumber = removing
			buffered = append(buffered, ev)
		}
		for _, id := range diff.Created {
			ev := events.NewEvent(events.KindRestrictionCreated, int64(id), keeping, source, actingUser, now)
			ev.RemovedPrisonerNumber = removing
			buffered = append(buffered, ev)
		}

		// All writes are in; the outbox append rides the same transaction
		// so an abort discards the events with the data.
		return o.emit(txCtx, buffered)
	})
	if err != nil {
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.Merges.Inc()
	}
	if o.logger != nil {
		o.logger.InfoContext(ctx, "merged prisoners",
			"keeping", keeping,
			"removing", removing,
			"restrictionsMoved", len(outcome.Restrictions.Created),
			"events", len(buffered),
		)
	}
	return outcome, nil
}

// ResetRestrictions replaces the prisoner's whole restriction set. DELETED
// events fire before CREATED events; a true no-op (empty desired set over an
// empty stored set) emits nothing.
func (o *Orchestrator) ResetRestrictions(ctx context.Context, prisonerNumber domain.PrisonerNumber, desired []prisoner.RestrictionInput, source domain.Source, actingUser string) (*prisoner.RestrictionsDiff, error) {
	ctx, span := tracer.Start(ctx, "merge.ResetRestrictions")
	defer span.End()

	if actingUser == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "acting user is required")
	}

	var diff prisoner.RestrictionsDiff
	err := o.runner.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		diff, err = o.restrictions.Reset(txCtx, prisonerNumber, desired, actingUser)
		if err != nil {
			return err
		}

		now := requestcontext.Now(txCtx)
		var buffered []events.Event
		for _, id := range diff.Deleted {
			buffered = append(buffered, events.NewEvent(events.KindRestrictionDeleted, int64(id), prisonerNumber, source, actingUser, now))
		}
		for _, id := range diff.Created {
			buffered = append(buffered, events.NewEvent(events.KindRestrictionCreated, int64(id), prisonerNumber, source, actingUser, now))
		}
		return o.emit(txCtx, buffered)
	})
	if err != nil {
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.Resets.Inc()
	}
	return &diff, nil
}

// SyncAttribute applies the incremental create-or-update transition for one
// attribute and emits a CREATED or UPDATED event only when a row was
// actually written; an unchanged sync is idempotent and silent.
func (o *Orchestrator) SyncAttribute(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind, value string, source domain.Source, actingUser string) (*prisoner.SyncOutcome, error) {
	if actingUser == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "acting user is required")
	}

	var outcome prisoner.SyncOutcome
	err := o.runner.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		outcome, err = o.attributes.CreateOrUpdate(txCtx, prisonerNumber, kind, value, actingUser)
		if err != nil {
			return err
		}

		var kindName events.Kind
		switch outcome.Status {
		case prisoner.SyncCreated:
			kindName = createdKindFor(kind)
		case prisoner.SyncUpdated:
			kindName = updatedKindFor(kind)
		default:
			return nil
		}
		ev := events.NewEvent(kindName, int64(outcome.ID), prisonerNumber, source, actingUser, requestcontext.Now(txCtx))
		return o.emit(txCtx, []events.Event{ev})
	})
	if err != nil {
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.AttributeSyncs.WithLabelValues(string(kind), string(outcome.Status)).Inc()
	}
	return &outcome, nil
}

// MigrateAttribute is the destructive bulk-load path. It emits no events:
// migration replays another system's history rather than observing a new
// state transition.
func (o *Orchestrator) MigrateAttribute(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind, history []attributes.MigratedRecord, current *attributes.MigratedRecord) ([]domain.AttributeID, error) {
	var ids []domain.AttributeID
	err := o.runner.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		ids, err = o.attributes.Migrate(txCtx, prisonerNumber, kind, history, current)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (o *Orchestrator) emit(ctx context.Context, buffered []events.Event) error {
	for _, ev := range buffered {
		if err := o.sink.Emit(ctx, ev); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record domain event")
		}
		if o.metrics != nil {
			o.metrics.EventsEmitted.WithLabelValues(string(ev.Kind)).Inc()
		}
	}
	return nil
}

func validateMergeRequest(keeping, removing domain.PrisonerNumber, actingUser string) error {
	if !keeping.IsValid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "invalid keeping prisoner number %q", keeping)
	}
	if !removing.IsValid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "invalid removing prisoner number %q", removing)
	}
	if keeping == removing {
		return dErrors.New(dErrors.CodeBadRequest, "a prisoner cannot be merged into itself")
	}
	if actingUser == "" {
		return dErrors.New(dErrors.CodeBadRequest, "acting user is required")
	}
	return nil
}

func setAttributeOutcome(outcome *prisoner.MergeOutcome, kind prisoner.AttributeKind, attr *prisoner.SyncOutcome) {
	switch kind {
	case prisoner.AttributeDomesticStatus:
		outcome.DomesticStatus = attr
	case prisoner.AttributeNumberOfChildren:
		outcome.NumberOfChildren = attr
	}
}

func createdKindFor(kind prisoner.AttributeKind) events.Kind {
	if kind == prisoner.AttributeNumberOfChildren {
		return events.KindNumberOfChildrenCreated
	}
	return events.KindDomesticStatusCreated
}

func updatedKindFor(kind prisoner.AttributeKind) events.Kind {
	if kind == prisoner.AttributeNumberOfChildren {
		return events.KindNumberOfChildrenUpdated
	}
	return events.KindDomesticStatusUpdated
}
