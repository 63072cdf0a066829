// Package search locates contacts by name and date of birth using tiered
// matching over current records and the audited revision history.
package search

import (
	"strings"
	"time"

	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
)

// Contact is the read model of a current contact row. The phonetic key
// columns are precomputed at write time by persistence and are read-only
// here.
type Contact struct {
	ID          domain.ContactID
	LastName    string
	FirstName   string
	MiddleNames string
	DateOfBirth *time.Time

	LastNameKey    string
	FirstNameKey   string
	MiddleNamesKey string
}

// RevisionType classifies an audited revision.
type RevisionType string

const (
	RevisionInsert RevisionType = "INSERT"
	RevisionUpdate RevisionType = "UPDATE"
	RevisionDelete RevisionType = "DELETE"
)

// ContactRevision is one audited snapshot of a contact's name fields. Only
// INSERT and UPDATE revisions are eligible for historical matching.
type ContactRevision struct {
	ContactID  domain.ContactID
	RevisionID domain.RevisionID
	Type       RevisionType

	LastName    string
	FirstName   string
	MiddleNames string

	LastNameKey    string
	FirstNameKey   string
	MiddleNamesKey string
}

// MatchQuery is the caller's search request. LastName is required; other
// name fields are optional filters. SoundsLike selects the phonetic tier
// instead of exact/partial; IncludeHistory unions audited revisions into the
// candidate set.
type MatchQuery struct {
	LastName       string
	FirstName      string
	MiddleNames    string
	DateOfBirth    *time.Time
	SoundsLike     bool
	IncludeHistory bool
}

// Tier is one matching strategy, attempted in the order the selector plans.
type Tier string

const (
	TierExact    Tier = "exact"
	TierPartial  Tier = "partial"
	TierPhonetic Tier = "phonetic"
)

// NameFilter is the normalized, tier-specific predicate handed to stores.
// Exact/partial carry lowercased name fields; phonetic carries precomputed
// keys. Empty fields are wildcards.
type NameFilter struct {
	Tier Tier

	LastName    string
	FirstName   string
	MiddleNames string

	LastNameKey    string
	FirstNameKey   string
	MiddleNamesKey string
}

// SortKey names a caller-selectable result ordering.
type SortKey string

const (
	SortByID          SortKey = "id"
	SortByLastName    SortKey = "lastName"
	SortByFirstName   SortKey = "firstName"
	SortByDateOfBirth SortKey = "dateOfBirth"
)

// sortColumns is the static sort-property mapping. Every public SortKey must
// have an entry; a unit test asserts completeness so an unmappable key can
// never reach query building.
var sortColumns = map[SortKey]string{
	SortByID:          "contact_id",
	SortByLastName:    "last_name",
	SortByFirstName:   "first_name",
	SortByDateOfBirth: "date_of_birth",
}

// SortKeys lists every supported key.
func SortKeys() []SortKey {
	return []SortKey{SortByID, SortByLastName, SortByFirstName, SortByDateOfBirth}
}

// Column returns the storage column backing the key. Only parsed keys reach
// this point, so a missing mapping is a programming error caught by test.
func (k SortKey) Column() string {
	return sortColumns[k]
}

// ParseSort validates a caller-supplied sort property. The zero property
// defaults to id ordering; an unknown property fails fast, naming the field,
// before any query executes.
func ParseSort(property string) (SortKey, error) {
	if strings.TrimSpace(property) == "" {
		return SortByID, nil
	}
	for _, k := range SortKeys() {
		if string(k) == property {
			return k, nil
		}
	}
	return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown sort property %q", property)
}

// PageRequest selects one page of the final candidate set. Page is
// zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Page is one page of matched contact ids plus paging metadata. For a fixed
// data snapshot the same query and page request always yields the same ids
// in the same order.
type Page struct {
	ContactIDs    []domain.ContactID
	Page          int
	Size          int
	TotalElements int
}
