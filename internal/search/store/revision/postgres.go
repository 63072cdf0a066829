package revision

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"contact-registry/internal/search"
	"contact-registry/pkg/domain"
)

// PostgresStore reads the audit tables holding contact revisions. Strictly
// read-only: the audit log is written by the owning persistence layer.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const (
	// The inner query bounds rows scanned before the distinct projection;
	// newest revisions first so a truncated scan keeps the freshest slice
	// of history.
	revisionExactSQL = `
		SELECT DISTINCT contact_id FROM (
			SELECT contact_id FROM contact_revisions
			WHERE revision_type IN ('INSERT', 'UPDATE')
			  AND lower(last_name) = $1
			  AND ($2 = '' OR lower(first_name) = $2)
			  AND ($3 = '' OR lower(middle_names) = $3)
			ORDER BY revision_id DESC
			LIMIT $4
		) matched
		ORDER BY contact_id`

	revisionPartialSQL = `
		SELECT DISTINCT contact_id FROM (
			SELECT contact_id FROM contact_revisions
			WHERE revision_type IN ('INSERT', 'UPDATE')
			  AND lower(last_name) LIKE '%' || $1 || '%'
			  AND ($2 = '' OR lower(first_name) LIKE '%' || $2 || '%')
			  AND ($3 = '' OR lower(middle_names) LIKE '%' || $3 || '%')
			ORDER BY revision_id DESC
			LIMIT $4
		) matched
		ORDER BY contact_id`

	revisionPhoneticSQL = `
		SELECT DISTINCT contact_id FROM (
			SELECT contact_id FROM contact_revisions
			WHERE revision_type IN ('INSERT', 'UPDATE')
			  AND last_name_soundex = $1
			  AND ($2 = '' OR first_name_soundex = $2)
			  AND ($3 = '' OR middle_names_soundex = $3)
			ORDER BY revision_id DESC
			LIMIT $4
		) matched
		ORDER BY contact_id`
)

func (s *PostgresStore) FindContactIDs(ctx context.Context, filter search.NameFilter, rowLimit int) ([]domain.ContactID, error) {
	var query string
	var last, first, middle string
	switch filter.Tier {
	case search.TierPhonetic:
		query = revisionPhoneticSQL
		last, first, middle = filter.LastNameKey, filter.FirstNameKey, filter.MiddleNamesKey
	case search.TierPartial:
		query = revisionPartialSQL
		last, first, middle = filter.LastName, filter.FirstName, filter.MiddleNames
	default:
		query = revisionExactSQL
		last, first, middle = filter.LastName, filter.FirstName, filter.MiddleNames
	}

	rows, err := s.pool.Query(ctx, query, last, first, middle, rowLimit)
	if err != nil {
		return nil, fmt.Errorf("find contact revisions: %w", err)
	}
	defer rows.Close()

	var ids []domain.ContactID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan revision contact id: %w", err)
		}
		ids = append(ids, domain.ContactID(id))
	}
	return ids, rows.Err()
}
