package attribute

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	txcontext "contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner"
	"contact-registry/pkg/domain"
)

// PostgresStore persists attribute rows. Every method participates in a
// transaction carried on the context, so orchestrated operations stay
// atomic.
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

func (s *PostgresStore) FindActive(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind) (*prisoner.PrisonerAttribute, error) {
	const query = `
		SELECT id, prisoner_number, kind, value, active, created_by, created_time
		FROM prisoner_attributes
		WHERE prisoner_number = $1 AND kind = $2 AND active`

	row := s.db(ctx).QueryRow(ctx, query, string(prisonerNumber), string(kind))

	var attr prisoner.PrisonerAttribute
	err := row.Scan(&attr.ID, &attr.PrisonerNumber, &attr.Kind, &attr.Value, &attr.Active, &attr.CreatedBy, &attr.CreatedTime)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active attribute: %w", err)
	}
	return &attr, nil
}

func (s *PostgresStore) Insert(ctx context.Context, attr prisoner.PrisonerAttribute) (domain.AttributeID, error) {
	const query = `
		INSERT INTO prisoner_attributes (prisoner_number, kind, value, active, created_by, created_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := s.db(ctx).QueryRow(ctx, query,
		string(attr.PrisonerNumber), string(attr.Kind), attr.Value, attr.Active, attr.CreatedBy, attr.CreatedTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert attribute: %w", err)
	}
	return domain.AttributeID(id), nil
}

func (s *PostgresStore) Deactivate(ctx context.Context, id domain.AttributeID) error {
	// Only the active flag moves; history rows are otherwise immutable.
	const query = `UPDATE prisoner_attributes SET active = false WHERE id = $1`
	if _, err := s.db(ctx).Exec(ctx, query, int64(id)); err != nil {
		return fmt.Errorf("deactivate attribute: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context, prisonerNumber domain.PrisonerNumber, kind prisoner.AttributeKind) error {
	const query = `DELETE FROM prisoner_attributes WHERE prisoner_number = $1 AND kind = $2`
	if _, err := s.db(ctx).Exec(ctx, query, string(prisonerNumber), string(kind)); err != nil {
		return fmt.Errorf("delete attribute rows: %w", err)
	}
	return nil
}
