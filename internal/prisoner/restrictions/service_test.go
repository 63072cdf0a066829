package restrictions_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/restrictions"
	restrictionstore "contact-registry/internal/prisoner/store/restriction"
	"contact-registry/internal/referencedata"
	refmemory "contact-registry/internal/referencedata/store/memory"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
	"contact-registry/pkg/requestcontext"
)

const (
	keeping  = domain.PrisonerNumber("A1234BC")
	removing = domain.PrisonerNumber("B4321CB")
)

type RestrictionDifferSuite struct {
	suite.Suite
	store  *restrictionstore.InMemoryStore
	differ *restrictions.Differ
	ctx    context.Context
	now    time.Time
}

func TestRestrictionDifferSuite(t *testing.T) {
	suite.Run(t, new(RestrictionDifferSuite))
}

func (s *RestrictionDifferSuite) SetupTest() {
	s.store = restrictionstore.New()

	refStore := refmemory.New()
	refStore.Seed(referencedata.GroupRestrictionType, "BAN", "CCTV", "NONCON")
	refdata, err := referencedata.New(refStore)
	s.Require().NoError(err)

	s.differ, err = restrictions.New(s.store, refdata)
	s.Require().NoError(err)

	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *RestrictionDifferSuite) input(restrictionType string) prisoner.RestrictionInput {
	return prisoner.RestrictionInput{
		RestrictionType:    restrictionType,
		EffectiveDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		AuthorisedUsername: "governor",
	}
}

// =============================================================================
// Reset
// =============================================================================

func (s *RestrictionDifferSuite) TestResetCreatesDesiredSet() {
	diff, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("BAN"), s.input("CCTV")}, "sync-user")
	s.Require().NoError(err)

	s.Len(diff.Created, 2)
	s.Empty(diff.Deleted)
	s.False(diff.WasDeleted)

	stored, err := s.store.ListByPrisoner(s.ctx, keeping)
	s.Require().NoError(err)
	s.Require().Len(stored, 2)
	s.Equal("sync-user", stored[0].CreatedBy)
	s.Equal(s.now, stored[0].CreatedTime)
}

func (s *RestrictionDifferSuite) TestResetReplacesUnchangedRowsUnderNewIDs() {
	first, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("BAN")}, "sync-user")
	s.Require().NoError(err)

	second, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("BAN")}, "sync-user")
	s.Require().NoError(err)

	s.Equal(first.Created, second.Deleted, "the identical desired row still replaces the stored one")
	s.Require().Len(second.Created, 1)
	s.NotEqual(first.Created[0], second.Created[0], "ids are never reused across a reset")
	s.True(second.WasDeleted)
}

func (s *RestrictionDifferSuite) TestResetToEmptySetDeletesEverything() {
	_, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("BAN"), s.input("CCTV")}, "sync-user")
	s.Require().NoError(err)

	diff, err := s.differ.Reset(s.ctx, keeping, nil, "sync-user")
	s.Require().NoError(err)

	s.Empty(diff.Created)
	s.Len(diff.Deleted, 2)

	stored, err := s.store.ListByPrisoner(s.ctx, keeping)
	s.Require().NoError(err)
	s.Empty(stored)
}

func (s *RestrictionDifferSuite) TestResetValidatesWholeInputBeforeAnyWrite() {
	_, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("BAN")}, "sync-user")
	s.Require().NoError(err)

	_, err = s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("CCTV"), s.input("UNKNOWN")}, "sync-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	stored, err := s.store.ListByPrisoner(s.ctx, keeping)
	s.Require().NoError(err)
	s.Require().Len(stored, 1, "failed reset leaves the stored set untouched")
	s.Equal("BAN", stored[0].RestrictionType)
}

func (s *RestrictionDifferSuite) TestResetRejectsMissingEffectiveDate() {
	bad := s.input("BAN")
	bad.EffectiveDate = time.Time{}

	_, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{bad}, "sync-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *RestrictionDifferSuite) TestResetRejectsOverlongComment() {
	bad := s.input("BAN")
	bad.CommentText = strings.Repeat("x", 241)

	_, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{bad}, "sync-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *RestrictionDifferSuite) TestResetRejectsMissingAuthoriser() {
	bad := s.input("BAN")
	bad.AuthorisedUsername = ""

	_, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{bad}, "sync-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *RestrictionDifferSuite) TestResetRejectsInvalidPrisonerNumber() {
	_, err := s.differ.Reset(s.ctx, "XYZ", nil, "sync-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

// =============================================================================
// Merge
// =============================================================================

func (s *RestrictionDifferSuite) TestMergeMovesRowsOntoKeepingPrisoner() {
	_, err := s.differ.Reset(s.ctx, keeping, []prisoner.RestrictionInput{s.input("BAN")}, "sync-user")
	s.Require().NoError(err)
	moving, err := s.differ.Reset(s.ctx, removing, []prisoner.RestrictionInput{s.input("CCTV"), s.input("NONCON")}, "sync-user")
	s.Require().NoError(err)

	diff, err := s.differ.Merge(s.ctx, keeping, removing, "merge-user")
	s.Require().NoError(err)

	s.ElementsMatch(moving.Created, diff.Deleted)
	s.Len(diff.Created, 2)
	s.True(diff.WasUpdated)

	kept, err := s.store.ListByPrisoner(s.ctx, keeping)
	s.Require().NoError(err)
	s.Len(kept, 3, "keeping prisoner holds its own row plus both moved rows")

	gone, err := s.store.ListByPrisoner(s.ctx, removing)
	s.Require().NoError(err)
	s.Empty(gone)
}

func (s *RestrictionDifferSuite) TestMergePreservesRestrictionFields() {
	in := s.input("CCTV")
	expiry := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	in.ExpiryDate = &expiry
	in.CommentText = "supervised visits only"

	_, err := s.differ.Reset(s.ctx, removing, []prisoner.RestrictionInput{in}, "sync-user")
	s.Require().NoError(err)

	_, err = s.differ.Merge(s.ctx, keeping, removing, "merge-user")
	s.Require().NoError(err)

	kept, err := s.store.ListByPrisoner(s.ctx, keeping)
	s.Require().NoError(err)
	s.Require().Len(kept, 1)
	s.Equal("CCTV", kept[0].RestrictionType)
	s.Equal("supervised visits only", kept[0].CommentText)
	s.Equal("governor", kept[0].AuthorisedUsername)
	s.Require().NotNil(kept[0].ExpiryDate)
	s.Equal(expiry, *kept[0].ExpiryDate)
	s.Equal("merge-user", kept[0].CreatedBy)
}

func (s *RestrictionDifferSuite) TestMergeWithNothingToMoveIsNoOp() {
	diff, err := s.differ.Merge(s.ctx, keeping, removing, "merge-user")
	s.Require().NoError(err)

	s.Empty(diff.Created)
	s.Empty(diff.Deleted)
	s.False(diff.WasUpdated)
}
