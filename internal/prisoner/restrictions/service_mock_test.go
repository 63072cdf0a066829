package restrictions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/mocks"
	"contact-registry/internal/prisoner/restrictions"
	"contact-registry/internal/referencedata"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
)

// A rejected input must stop the reset before the stored set is touched.
func TestResetTouchesNoRowsWhenValidationFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRestrictionStore(ctrl)
	refdata := mocks.NewMockReferenceDataChecker(ctrl)

	refdata.EXPECT().
		Verify(gomock.Any(), referencedata.GroupRestrictionType, "BAN").
		Return(nil)
	refdata.EXPECT().
		Verify(gomock.Any(), referencedata.GroupRestrictionType, "UNKNOWN").
		Return(dErrors.New(dErrors.CodeNotFound, `no "RESTRICTION" reference code matching "UNKNOWN"`))
	// No store expectations: DeleteAllForPrisoner and Insert must never run.

	differ, err := restrictions.New(store, refdata)
	require.NoError(t, err)

	inputs := []prisoner.RestrictionInput{
		{RestrictionType: "BAN", EffectiveDate: time.Now(), AuthorisedUsername: "governor"},
		{RestrictionType: "UNKNOWN", EffectiveDate: time.Now(), AuthorisedUsername: "governor"},
	}
	_, err = differ.Reset(context.Background(), keeping, inputs, "sync-user")
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

// A storage failure mid-insert surfaces as an internal error; the surrounding
// transaction is what rolls the earlier writes back.
func TestResetPropagatesInsertFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockRestrictionStore(ctrl)
	refdata := mocks.NewMockReferenceDataChecker(ctrl)

	refdata.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	store.EXPECT().DeleteAllForPrisoner(gomock.Any(), keeping).Return(nil, nil)
	gomock.InOrder(
		store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.RestrictionID(1), nil),
		store.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(domain.RestrictionID(0), errors.New("connection reset")),
	)

	differ, err := restrictions.New(store, refdata)
	require.NoError(t, err)

	inputs := []prisoner.RestrictionInput{
		{RestrictionType: "BAN", EffectiveDate: time.Now(), AuthorisedUsername: "governor"},
		{RestrictionType: "CCTV", EffectiveDate: time.Now(), AuthorisedUsername: "governor"},
	}
	_, err = differ.Reset(context.Background(), keeping, inputs, "sync-user")
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
