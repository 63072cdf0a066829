package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"contact-registry/internal/search"
	"contact-registry/pkg/domain"
)

// PostgresStore reads current contact rows. The soundex columns are
// maintained by the write path; this store only compares against them.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const (
	findExactSQL = `
		SELECT contact_id FROM contacts
		WHERE lower(last_name) = $1
		  AND ($2 = '' OR lower(first_name) = $2)
		  AND ($3 = '' OR lower(middle_names) = $3)
		  AND ($4::date IS NULL OR date_of_birth = $4)
		ORDER BY contact_id`

	findPartialSQL = `
		SELECT contact_id FROM contacts
		WHERE lower(last_name) LIKE '%' || $1 || '%'
		  AND ($2 = '' OR lower(first_name) LIKE '%' || $2 || '%')
		  AND ($3 = '' OR lower(middle_names) LIKE '%' || $3 || '%')
		  AND ($4::date IS NULL OR date_of_birth = $4)
		ORDER BY contact_id`

	findPhoneticSQL = `
		SELECT contact_id FROM contacts
		WHERE last_name_soundex = $1
		  AND ($2 = '' OR first_name_soundex = $2)
		  AND ($3 = '' OR middle_names_soundex = $3)
		  AND ($4::date IS NULL OR date_of_birth = $4)
		ORDER BY contact_id`
)

func (s *PostgresStore) FindIDs(ctx context.Context, filter search.NameFilter, dateOfBirth *time.Time) ([]domain.ContactID, error) {
	var query string
	var last, first, middle string
	switch filter.Tier {
	case search.TierPhonetic:
		query = findPhoneticSQL
		last, first, middle = filter.LastNameKey, filter.FirstNameKey, filter.MiddleNamesKey
	case search.TierPartial:
		query = findPartialSQL
		last, first, middle = filter.LastName, filter.FirstName, filter.MiddleNames
	default:
		query = findExactSQL
		last, first, middle = filter.LastName, filter.FirstName, filter.MiddleNames
	}

	rows, err := s.pool.Query(ctx, query, last, first, middle, dateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *PostgresStore) Existing(ctx context.Context, ids []domain.ContactID, dateOfBirth *time.Time) ([]domain.ContactID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	const query = `
		SELECT contact_id FROM contacts
		WHERE contact_id = ANY($1)
		  AND ($2::date IS NULL OR date_of_birth = $2)
		ORDER BY contact_id`

	rows, err := s.pool.Query(ctx, query, raw, dateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("check existing contacts: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

func (s *PostgresStore) SortIDs(ctx context.Context, ids []domain.ContactID, key search.SortKey) ([]domain.ContactID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	// key.Column comes from the static sort mapping, never from caller
	// input, so interpolation is safe here.
	query := fmt.Sprintf(`
		SELECT contact_id FROM contacts
		WHERE contact_id = ANY($1)
		ORDER BY %s, contact_id`, key.Column())

	rows, err := s.pool.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("sort contacts: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanIDs(rows rowScanner) ([]domain.ContactID, error) {
	var ids []domain.ContactID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan contact id: %w", err)
		}
		ids = append(ids, domain.ContactID(id))
	}
	return ids, rows.Err()
}
