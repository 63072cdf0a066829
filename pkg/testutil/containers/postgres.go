//go:build integration

// Package containers starts throwaway infrastructure for integration suites.
package containers

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

// schema mirrors the tables the stores expect. Kept here rather than in a
// migrations tool: integration suites own their own schema lifecycle.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	contact_id          BIGINT PRIMARY KEY,
	last_name           TEXT NOT NULL,
	first_name          TEXT NOT NULL DEFAULT '',
	middle_names        TEXT NOT NULL DEFAULT '',
	date_of_birth       DATE,
	last_name_soundex   TEXT NOT NULL DEFAULT '',
	first_name_soundex  TEXT NOT NULL DEFAULT '',
	middle_names_soundex TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS contact_revisions (
	revision_id         BIGSERIAL PRIMARY KEY,
	contact_id          BIGINT NOT NULL,
	revision_type       TEXT NOT NULL,
	last_name           TEXT NOT NULL DEFAULT '',
	first_name          TEXT NOT NULL DEFAULT '',
	middle_names        TEXT NOT NULL DEFAULT '',
	last_name_soundex   TEXT NOT NULL DEFAULT '',
	first_name_soundex  TEXT NOT NULL DEFAULT '',
	middle_names_soundex TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS prisoner_attributes (
	id              BIGSERIAL PRIMARY KEY,
	prisoner_number TEXT NOT NULL,
	kind            TEXT NOT NULL,
	value           TEXT NOT NULL,
	active          BOOLEAN NOT NULL,
	created_by      TEXT NOT NULL,
	created_time    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS prisoner_restrictions (
	id                  BIGSERIAL PRIMARY KEY,
	prisoner_number     TEXT NOT NULL,
	restriction_type    TEXT NOT NULL,
	effective_date      TIMESTAMPTZ NOT NULL,
	expiry_date         TIMESTAMPTZ,
	comment_text        TEXT NOT NULL DEFAULT '',
	authorised_username TEXT NOT NULL,
	created_by          TEXT NOT NULL,
	created_time        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reference_codes (
	group_code TEXT NOT NULL,
	code       TEXT NOT NULL,
	active     BOOLEAN NOT NULL DEFAULT TRUE,
	PRIMARY KEY (group_code, code)
);

CREATE TABLE IF NOT EXISTS domain_event_outbox (
	id           UUID PRIMARY KEY,
	kind         TEXT NOT NULL,
	payload      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	published_at TIMESTAMPTZ
);
`

// PostgresContainer wraps a testcontainers Postgres instance with a ready
// pgx pool and the service schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts Postgres and applies the schema.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("contact_registry"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to open pgx pool: %v", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(context.Background())
	})

	return &PostgresContainer{Container: container, Pool: pool}
}

// TruncateTables empties the named tables between tests.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	if len(tables) == 0 {
		return nil
	}
	_, err := p.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", strings.Join(tables, ", ")))
	return err
}
