package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"contact-registry/internal/referencedata"
)

// Store reads reference codes from PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Exists(ctx context.Context, group referencedata.Group, code string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM reference_codes
			WHERE group_code = $1 AND code = $2 AND active
		)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, string(group), code).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reference code: %w", err)
	}
	return exists, nil
}
