package referencedata_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-registry/internal/referencedata"
	refmemory "contact-registry/internal/referencedata/store/memory"
	dErrors "contact-registry/pkg/domain-errors"
)

func newService(t *testing.T) *referencedata.Service {
	t.Helper()

	store := refmemory.New()
	store.Seed(referencedata.GroupDomesticStatus, "M", "S")
	store.Seed(referencedata.GroupRestrictionType, "BAN")

	service, err := referencedata.New(store)
	require.NoError(t, err)
	return service
}

func TestVerifyAcceptsKnownCode(t *testing.T) {
	service := newService(t)
	assert.NoError(t, service.Verify(context.Background(), referencedata.GroupDomesticStatus, "M"))
}

func TestVerifyRejectsUnknownCode(t *testing.T) {
	service := newService(t)

	err := service.Verify(context.Background(), referencedata.GroupDomesticStatus, "ZZ")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestVerifyTreatsUnknownGroupAsNotFound(t *testing.T) {
	service := newService(t)

	// "BAN" exists, but only under the restriction group.
	err := service.Verify(context.Background(), referencedata.GroupDomesticStatus, "BAN")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestNewRequiresStore(t *testing.T) {
	_, err := referencedata.New(nil)
	assert.Error(t, err)
}
