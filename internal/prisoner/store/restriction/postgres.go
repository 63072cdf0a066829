package restriction

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	txcontext "contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner"
	"contact-registry/pkg/domain"
)

// PostgresStore persists restriction rows, participating in any transaction
// carried on the context.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PostgresStore) db(ctx context.Context) querier {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.pool
}

func (s *PostgresStore) ListByPrisoner(ctx context.Context, prisonerNumber domain.PrisonerNumber) ([]prisoner.PrisonerRestriction, error) {
	const query = `
		SELECT id, prisoner_number, restriction_type, effective_date, expiry_date,
		       comment_text, authorised_username, created_by, created_time
		FROM prisoner_restrictions
		WHERE prisoner_number = $1
		ORDER BY id`

	rows, err := s.db(ctx).Query(ctx, query, string(prisonerNumber))
	if err != nil {
		return nil, fmt.Errorf("list restrictions: %w", err)
	}
	defer rows.Close()

	var out []prisoner.PrisonerRestriction
	for rows.Next() {
		var r prisoner.PrisonerRestriction
		if err := rows.Scan(&r.ID, &r.PrisonerNumber, &r.RestrictionType, &r.EffectiveDate, &r.ExpiryDate,
			&r.CommentText, &r.AuthorisedUsername, &r.CreatedBy, &r.CreatedTime); err != nil {
			return nil, fmt.Errorf("scan restriction: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Insert(ctx context.Context, restriction prisoner.PrisonerRestriction) (domain.RestrictionID, error) {
	const query = `
		INSERT INTO prisoner_restrictions
			(prisoner_number, restriction_type, effective_date, expiry_date,
			 comment_text, authorised_username, created_by, created_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	var id int64
	err := s.db(ctx).QueryRow(ctx, query,
		string(restriction.PrisonerNumber), restriction.RestrictionType, restriction.EffectiveDate,
		restriction.ExpiryDate, restriction.CommentText, restriction.AuthorisedUsername,
		restriction.CreatedBy, restriction.CreatedTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert restriction: %w", err)
	}
	return domain.RestrictionID(id), nil
}

func (s *PostgresStore) DeleteAllForPrisoner(ctx context.Context, prisonerNumber domain.PrisonerNumber) ([]domain.RestrictionID, error) {
	const query = `
		DELETE FROM prisoner_restrictions
		WHERE prisoner_number = $1
		RETURNING id`

	rows, err := s.db(ctx).Query(ctx, query, string(prisonerNumber))
	if err != nil {
		return nil, fmt.Errorf("delete restrictions: %w", err)
	}
	defer rows.Close()

	var deleted []domain.RestrictionID
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted restriction id: %w", err)
		}
		deleted = append(deleted, domain.RestrictionID(id))
	}
	return deleted, rows.Err()
}
