package merge_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"contact-registry/internal/events"
	eventsmemory "contact-registry/internal/events/store/memory"
	"contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/attributes"
	"contact-registry/internal/prisoner/merge"
	"contact-registry/internal/prisoner/restrictions"
	attributestore "contact-registry/internal/prisoner/store/attribute"
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

type MergeOrchestratorSuite struct {
	suite.Suite
	attrStore    *attributestore.InMemoryStore
	restrStore   *restrictionstore.InMemoryStore
	outbox       *eventsmemory.Store
	orchestrator *merge.Orchestrator
	ctx          context.Context
	now          time.Time
}

func TestMergeOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(MergeOrchestratorSuite))
}

func (s *MergeOrchestratorSuite) SetupTest() {
	s.attrStore = attributestore.New()
	s.restrStore = restrictionstore.New()
	s.outbox = eventsmemory.New()

	refStore := refmemory.New()
	refStore.Seed(referencedata.GroupDomesticStatus, "M", "S", "D")
	refStore.Seed(referencedata.GroupRestrictionType, "BAN", "CCTV", "NONCON")
	refdata, err := referencedata.New(refStore)
	s.Require().NoError(err)

	reconciler, err := attributes.New(s.attrStore, refdata)
	s.Require().NoError(err)
	differ, err := restrictions.New(s.restrStore, refdata)
	s.Require().NoError(err)

	s.orchestrator, err = merge.New(reconciler, differ, s.outbox, tx.NoopRunner{})
	s.Require().NoError(err)

	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
}

func (s *MergeOrchestratorSuite) input(restrictionType string) prisoner.RestrictionInput {
	return prisoner.RestrictionInput{
		RestrictionType:    restrictionType,
		EffectiveDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		AuthorisedUsername: "governor",
	}
}

func (s *MergeOrchestratorSuite) kinds() []events.Kind {
	all := s.outbox.All()
	kinds := make([]events.Kind, len(all))
	for i, ev := range all {
		kinds[i] = ev.Kind
	}
	return kinds
}

// =============================================================================
// Restriction reset events
// =============================================================================

func (s *MergeOrchestratorSuite) TestResetFromEmptyEmitsOnlyCreatedEvents() {
	diff, err := s.orchestrator.ResetRestrictions(s.ctx, keeping,
		[]prisoner.RestrictionInput{s.input("BAN"), s.input("CCTV")},
		domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)

	s.Len(diff.Created, 2)
	s.Empty(diff.Deleted)

	s.Equal([]events.Kind{
		events.KindRestrictionCreated,
		events.KindRestrictionCreated,
	}, s.kinds())

	first := s.outbox.All()[0]
	s.Equal(keeping, first.PrisonerNumber)
	s.Equal(domain.SourceNOMIS, first.Source)
	s.Equal("sync-user", first.Username)
	s.Equal(s.now, first.OccurredAt)
}

func (s *MergeOrchestratorSuite) TestResetEmitsDeletedBeforeCreated() {
	_, err := s.orchestrator.ResetRestrictions(s.ctx, keeping,
		[]prisoner.RestrictionInput{s.input("BAN")}, domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	s.outbox.Clear()

	_, err = s.orchestrator.ResetRestrictions(s.ctx, keeping,
		[]prisoner.RestrictionInput{s.input("CCTV")}, domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)

	s.Equal([]events.Kind{
		events.KindRestrictionDeleted,
		events.KindRestrictionCreated,
	}, s.kinds())
}

func (s *MergeOrchestratorSuite) TestNoOpResetEmitsNothing() {
	diff, err := s.orchestrator.ResetRestrictions(s.ctx, keeping, nil, domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)

	s.Empty(diff.Created)
	s.Empty(diff.Deleted)
	s.Empty(s.outbox.All())
}

func (s *MergeOrchestratorSuite) TestFailedResetEmitsNothing() {
	_, err := s.orchestrator.ResetRestrictions(s.ctx, keeping,
		[]prisoner.RestrictionInput{s.input("UNKNOWN")}, domain.SourceNOMIS, "sync-user")
	s.Require().Error(err)
	s.Empty(s.outbox.All())
}

// =============================================================================
// Prisoner merge
// =============================================================================

func (s *MergeOrchestratorSuite) TestMergeMovesRestrictionsAndEmitsDeletePlusCreatePerRow() {
	_, err := s.orchestrator.ResetRestrictions(s.ctx, keeping,
		[]prisoner.RestrictionInput{s.input("BAN")}, domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	_, err = s.orchestrator.ResetRestrictions(s.ctx, removing,
		[]prisoner.RestrictionInput{s.input("CCTV"), s.input("NONCON"), s.input("BAN")}, domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	s.outbox.Clear()

	outcome, err := s.orchestrator.MergePrisoners(s.ctx, keeping, removing, domain.SourceNOMIS, "merge-user")
	s.Require().NoError(err)

	s.Len(outcome.Restrictions.Created, 3)
	s.Len(outcome.Restrictions.Deleted, 3)

	kept, err := s.restrStore.ListByPrisoner(s.ctx, keeping)
	s.Require().NoError(err)
	s.Len(kept, 4)

	s.Equal([]events.Kind{
		events.KindRestrictionDeleted,
		events.KindRestrictionDeleted,
		events.KindRestrictionDeleted,
		events.KindRestrictionCreated,
		events.KindRestrictionCreated,
		events.KindRestrictionCreated,
	}, s.kinds())

	for _, ev := range s.outbox.All() {
		s.Equal(removing, ev.RemovedPrisonerNumber)
		if ev.Kind == events.KindRestrictionDeleted {
			s.Equal(removing, ev.PrisonerNumber)
		} else {
			s.Equal(keeping, ev.PrisonerNumber)
		}
	}
}

func (s *MergeOrchestratorSuite) TestMergeNeverOverwritesKeepingAttribute() {
	s.syncAttr(keeping, prisoner.AttributeDomesticStatus, "M")
	s.syncAttr(removing, prisoner.AttributeDomesticStatus, "D")
	s.outbox.Clear()

	outcome, err := s.orchestrator.MergePrisoners(s.ctx, keeping, removing, domain.SourceNOMIS, "merge-user")
	s.Require().NoError(err)

	s.Nil(outcome.DomesticStatus, "keeping value won, nothing written")
	s.Empty(s.outbox.All(), "a discarded attribute produces no event")

	active, err := s.attrStore.FindActive(s.ctx, keeping, prisoner.AttributeDomesticStatus)
	s.Require().NoError(err)
	s.Equal("M", active.Value)
}

func (s *MergeOrchestratorSuite) TestMergeCopiesAttributeAndEmitsCreated() {
	s.syncAttr(removing, prisoner.AttributeDomesticStatus, "D")
	s.outbox.Clear()

	outcome, err := s.orchestrator.MergePrisoners(s.ctx, keeping, removing, domain.SourceDPS, "merge-user")
	s.Require().NoError(err)

	s.Require().NotNil(outcome.DomesticStatus)
	s.Equal(prisoner.SyncCreated, outcome.DomesticStatus.Status)

	all := s.outbox.All()
	s.Require().Len(all, 1)
	s.Equal(events.KindDomesticStatusCreated, all[0].Kind)
	s.Equal(keeping, all[0].PrisonerNumber)
	s.Equal(removing, all[0].RemovedPrisonerNumber)
	s.Equal(domain.SourceDPS, all[0].Source)
}

func (s *MergeOrchestratorSuite) TestMergeRejectsSelfMerge() {
	_, err := s.orchestrator.MergePrisoners(s.ctx, keeping, keeping, domain.SourceNOMIS, "merge-user")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *MergeOrchestratorSuite) TestMergeRequiresActingUser() {
	_, err := s.orchestrator.MergePrisoners(s.ctx, keeping, removing, domain.SourceNOMIS, "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

// =============================================================================
// Attribute sync events
// =============================================================================

func (s *MergeOrchestratorSuite) TestSyncAttributeEmitsCreatedThenUpdatedThenNothing() {
	outcome, err := s.orchestrator.SyncAttribute(s.ctx, keeping, prisoner.AttributeNumberOfChildren, "2", domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	s.Equal(prisoner.SyncCreated, outcome.Status)

	outcome, err = s.orchestrator.SyncAttribute(s.ctx, keeping, prisoner.AttributeNumberOfChildren, "3", domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	s.Equal(prisoner.SyncUpdated, outcome.Status)

	outcome, err = s.orchestrator.SyncAttribute(s.ctx, keeping, prisoner.AttributeNumberOfChildren, "3", domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	s.Equal(prisoner.SyncUnchanged, outcome.Status)

	s.Equal([]events.Kind{
		events.KindNumberOfChildrenCreated,
		events.KindNumberOfChildrenUpdated,
	}, s.kinds(), "the unchanged sync stayed silent")
}

func (s *MergeOrchestratorSuite) TestMigrateAttributeEmitsNoEvents() {
	ids, err := s.orchestrator.MigrateAttribute(s.ctx, keeping, prisoner.AttributeDomesticStatus,
		[]attributes.MigratedRecord{{Value: "S", CreatedBy: "legacy-user", CreatedTime: s.now}},
		&attributes.MigratedRecord{Value: "M", CreatedBy: "legacy-user", CreatedTime: s.now},
	)
	s.Require().NoError(err)
	s.Len(ids, 2)
	s.Empty(s.outbox.All())
}

func (s *MergeOrchestratorSuite) syncAttr(p domain.PrisonerNumber, kind prisoner.AttributeKind, value string) *prisoner.SyncOutcome {
	outcome, err := s.orchestrator.SyncAttribute(s.ctx, p, kind, value, domain.SourceNOMIS, "sync-user")
	s.Require().NoError(err)
	return outcome
}
