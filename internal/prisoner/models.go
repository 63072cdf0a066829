// Package prisoner holds the prisoner-level reconciliation model: singleton
// attributes (domestic status, number of children), restriction sets, and the
// outcome values that drive domain event emission.
package prisoner

import (
	"time"

	"contact-registry/pkg/domain"
)

// AttributeKind names one singleton attribute. Both kinds share the same
// lifecycle; only the payload validation differs.
type AttributeKind string

const (
	AttributeDomesticStatus   AttributeKind = "DOMESTIC_STATUS"
	AttributeNumberOfChildren AttributeKind = "NUMBER_OF_CHILDREN"
)

// Kinds lists every attribute kind, in the order merge processes them.
func Kinds() []AttributeKind {
	return []AttributeKind{AttributeDomesticStatus, AttributeNumberOfChildren}
}

// PrisonerAttribute is one attribute row. At most one row per prisoner per
// kind has Active=true; deactivated rows form an immutable history.
type PrisonerAttribute struct {
	ID             domain.AttributeID
	PrisonerNumber domain.PrisonerNumber
	Kind           AttributeKind
	Value          string
	Active         bool
	CreatedBy      string
	CreatedTime    time.Time
}

// PrisonerRestriction is one restriction row. Multiple restrictions per
// prisoner may be active concurrently; this is not a singleton.
type PrisonerRestriction struct {
	ID                 domain.RestrictionID
	PrisonerNumber     domain.PrisonerNumber
	RestrictionType    string
	EffectiveDate      time.Time
	ExpiryDate         *time.Time
	CommentText        string
	AuthorisedUsername string
	CreatedBy          string
	CreatedTime        time.Time
}

// RestrictionInput is a desired restriction supplied by a caller. External
// systems supply no stable foreign id, so inputs have no identity of their
// own.
type RestrictionInput struct {
	RestrictionType    string
	EffectiveDate      time.Time
	ExpiryDate         *time.Time
	CommentText        string
	AuthorisedUsername string
}

// SyncStatus classifies the outcome of a create-or-update transition.
type SyncStatus string

const (
	SyncCreated   SyncStatus = "CREATED"
	SyncUpdated   SyncStatus = "UPDATED"
	SyncUnchanged SyncStatus = "UNCHANGED"
)

// SyncOutcome reports what a singleton attribute transition did. Never
// persisted; it exists to drive event emission.
type SyncOutcome struct {
	Status SyncStatus
	ID     domain.AttributeID
	// DeactivatedID is set only when Status is SyncUpdated and names the
	// row that was moved to history.
	DeactivatedID domain.AttributeID
}

// RestrictionsDiff reports the create/delete sets of a restriction reset or
// merge. Never persisted.
type RestrictionsDiff struct {
	Created []domain.RestrictionID
	Deleted []domain.RestrictionID
	// WasUpdated is true when a merge moved at least one row.
	WasUpdated bool
	// WasDeleted is true when a reset removed at least one row.
	WasDeleted bool
}

// MergeOutcome aggregates everything a prisoner merge changed. Attribute
// entries are nil when the keeping prisoner's value won and nothing was
// written.
type MergeOutcome struct {
	DomesticStatus   *SyncOutcome
	NumberOfChildren *SyncOutcome
	Restrictions     RestrictionsDiff
}
