//go:build integration

package referencedata_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contact-registry/internal/referencedata"
	refpostgres "contact-registry/internal/referencedata/store/postgres"
	"contact-registry/pkg/testutil/containers"
)

type CachedStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	redis    *containers.RedisContainer
	store    *referencedata.CachedStore
}

func TestCachedStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedStoreSuite))
}

func (s *CachedStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.redis = containers.NewRedisContainer(s.T())
	s.store = referencedata.NewCachedStore(refpostgres.New(s.postgres.Pool), s.redis.Client, time.Minute)
}

func (s *CachedStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "reference_codes"))
	s.Require().NoError(s.redis.FlushAll(ctx))
}

func (s *CachedStoreSuite) seed(group referencedata.Group, code string, active bool) {
	_, err := s.postgres.Pool.Exec(context.Background(),
		"INSERT INTO reference_codes (group_code, code, active) VALUES ($1, $2, $3)",
		string(group), code, active)
	s.Require().NoError(err)
}

func (s *CachedStoreSuite) TestExistsHitsStoreThenCache() {
	ctx := context.Background()
	s.seed(referencedata.GroupRestrictionType, "BAN", true)

	exists, err := s.store.Exists(ctx, referencedata.GroupRestrictionType, "BAN")
	s.Require().NoError(err)
	s.True(exists)

	// The answer is now cached: removing the row doesn't change it until
	// the TTL expires.
	s.Require().NoError(s.postgres.TruncateTables(ctx, "reference_codes"))

	exists, err = s.store.Exists(ctx, referencedata.GroupRestrictionType, "BAN")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *CachedStoreSuite) TestInactiveCodeIsAbsent() {
	ctx := context.Background()
	s.seed(referencedata.GroupDomesticStatus, "M", false)

	exists, err := s.store.Exists(ctx, referencedata.GroupDomesticStatus, "M")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *CachedStoreSuite) TestUnknownGroupBehavesAsNotFound() {
	ctx := context.Background()
	s.seed(referencedata.GroupDomesticStatus, "M", true)

	exists, err := s.store.Exists(ctx, referencedata.Group("NO_SUCH_GROUP"), "M")
	s.Require().NoError(err)
	s.False(exists)
}
