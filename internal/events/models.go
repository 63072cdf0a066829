// Package events defines the domain events this service emits and the outbox
// pipeline that delivers them. Deciding WHAT to send is the orchestrators'
// job; this package owns the envelope and the at-least-once transport.
package events

import (
	"time"

	"github.com/google/uuid"

	"contact-registry/pkg/domain"
)

// Kind identifies an observable state transition.
type Kind string

const (
	KindDomesticStatusCreated Kind = "prisoner.domestic-status.created"
	KindDomesticStatusUpdated Kind = "prisoner.domestic-status.updated"

	KindNumberOfChildrenCreated Kind = "prisoner.number-of-children.created"
	KindNumberOfChildrenUpdated Kind = "prisoner.number-of-children.updated"

	KindRestrictionCreated Kind = "prisoner.restriction.created"
	KindRestrictionUpdated Kind = "prisoner.restriction.updated"
	KindRestrictionDeleted Kind = "prisoner.restriction.deleted"
)

// Event is one domain event record. Events reflect committed state only:
// orchestrators buffer them during their transaction and hand them to the
// sink after the writes are flushed.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Kind     Kind      `json:"kind"`
	RecordID int64     `json:"recordId"`

	PrisonerNumber domain.PrisonerNumber `json:"prisonerNumber,omitempty"`
	// RemovedPrisonerNumber is set on events raised by a prisoner merge and
	// names the absorbed identity.
	RemovedPrisonerNumber domain.PrisonerNumber `json:"removedPrisonerNumber,omitempty"`
	ContactID             domain.ContactID      `json:"contactId,omitempty"`

	Source     domain.Source `json:"source"`
	Username   string        `json:"username"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// NewEvent stamps identity and time onto an event envelope.
func NewEvent(kind Kind, recordID int64, prisonerNumber domain.PrisonerNumber, source domain.Source, username string, occurredAt time.Time) Event {
	return Event{
		ID:             uuid.New(),
		Kind:           kind,
		RecordID:       recordID,
		PrisonerNumber: prisonerNumber,
		Source:         source,
		Username:       username,
		OccurredAt:     occurredAt,
	}
}
