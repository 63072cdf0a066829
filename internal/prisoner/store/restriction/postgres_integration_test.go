//go:build integration

package restriction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/store/restriction"
	"contact-registry/pkg/domain"
	"contact-registry/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *restriction.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = restriction.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "prisoner_restrictions"))
}

func (s *PostgresStoreSuite) newRow(prisonerNumber domain.PrisonerNumber, restrictionType string) prisoner.PrisonerRestriction {
	return prisoner.PrisonerRestriction{
		PrisonerNumber:     prisonerNumber,
		RestrictionType:    restrictionType,
		EffectiveDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		AuthorisedUsername: "governor",
		CreatedBy:          "sync-user",
		CreatedTime:        time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *PostgresStoreSuite) TestInsertAndListRoundTrip() {
	ctx := context.Background()

	id1, err := s.store.Insert(ctx, s.newRow("A1234BC", "BAN"))
	s.Require().NoError(err)
	id2, err := s.store.Insert(ctx, s.newRow("A1234BC", "CCTV"))
	s.Require().NoError(err)
	_, err = s.store.Insert(ctx, s.newRow("B4321CB", "BAN"))
	s.Require().NoError(err)

	rows, err := s.store.ListByPrisoner(ctx, "A1234BC")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal(id1, rows[0].ID)
	s.Equal(id2, rows[1].ID)
	s.Equal("BAN", rows[0].RestrictionType)
	s.Equal("governor", rows[0].AuthorisedUsername)
}

func (s *PostgresStoreSuite) TestDeleteAllReturnsRemovedIDs() {
	ctx := context.Background()

	id1, err := s.store.Insert(ctx, s.newRow("A1234BC", "BAN"))
	s.Require().NoError(err)
	id2, err := s.store.Insert(ctx, s.newRow("A1234BC", "CCTV"))
	s.Require().NoError(err)

	deleted, err := s.store.DeleteAllForPrisoner(ctx, "A1234BC")
	s.Require().NoError(err)
	s.ElementsMatch([]domain.RestrictionID{id1, id2}, deleted)

	rows, err := s.store.ListByPrisoner(ctx, "A1234BC")
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *PostgresStoreSuite) TestIDsNeverReusedAfterDelete() {
	ctx := context.Background()

	first, err := s.store.Insert(ctx, s.newRow("A1234BC", "BAN"))
	s.Require().NoError(err)
	_, err = s.store.DeleteAllForPrisoner(ctx, "A1234BC")
	s.Require().NoError(err)

	second, err := s.store.Insert(ctx, s.newRow("A1234BC", "BAN"))
	s.Require().NoError(err)
	s.Greater(int64(second), int64(first))
}

func (s *PostgresStoreSuite) TestRollbackLeavesNoPartialWrite() {
	ctx := context.Background()
	runner := tx.NewPgxRunner(s.postgres.Pool)

	boom := errors.New("boom")
	err := runner.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.Insert(txCtx, s.newRow("A1234BC", "BAN")); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	rows, err := s.store.ListByPrisoner(ctx, "A1234BC")
	s.Require().NoError(err)
	s.Empty(rows, "aborted transaction wrote nothing")
}
