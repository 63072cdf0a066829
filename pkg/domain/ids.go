// Package domain defines the typed identifiers shared across the service.
// Keeping them typed (rather than bare int64/string) lets the compiler catch
// a contact id being passed where a restriction id belongs.
package domain

import (
	"regexp"
	"strconv"
)

// ContactID identifies a contact. Allocated by the owning system's sequence;
// immutable for the life of the contact.
type ContactID int64

func (c ContactID) IsNil() bool { return c == 0 }

func (c ContactID) String() string { return strconv.FormatInt(int64(c), 10) }

// RestrictionID identifies one prisoner restriction row.
type RestrictionID int64

func (r RestrictionID) IsNil() bool { return r == 0 }

// AttributeID identifies one prisoner attribute row (active or history).
type AttributeID int64

func (a AttributeID) IsNil() bool { return a == 0 }

// RevisionID identifies one audited revision of a contact.
type RevisionID int64

// prisonerNumberPattern matches NOMIS offender numbers, e.g. "A1234BC".
var prisonerNumberPattern = regexp.MustCompile(`^[A-Z]\d{4}[A-Z]{2}$`)

// PrisonerNumber identifies a prisoner in the external system of record.
type PrisonerNumber string

func (p PrisonerNumber) IsNil() bool { return p == "" }

func (p PrisonerNumber) String() string { return string(p) }

// IsValid reports whether the number has the expected NOMIS shape.
func (p PrisonerNumber) IsValid() bool {
	return prisonerNumberPattern.MatchString(string(p))
}

// Source names the system a write originated from. It is carried verbatim on
// every domain event so consumers can break sync loops.
type Source string

const (
	SourceNOMIS Source = "NOMIS"
	SourceDPS   Source = "DPS"
)
