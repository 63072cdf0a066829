package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventsmemory "contact-registry/internal/events/store/memory"
	"contact-registry/internal/platform/middleware"
	"contact-registry/internal/platform/tx"
	"contact-registry/internal/prisoner/attributes"
	"contact-registry/internal/prisoner/handler"
	"contact-registry/internal/prisoner/merge"
	"contact-registry/internal/prisoner/restrictions"
	attributestore "contact-registry/internal/prisoner/store/attribute"
	restrictionstore "contact-registry/internal/prisoner/store/restriction"
	"contact-registry/internal/referencedata"
	refmemory "contact-registry/internal/referencedata/store/memory"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	refStore := refmemory.New()
	refStore.Seed(referencedata.GroupDomesticStatus, "M", "S")
	refStore.Seed(referencedata.GroupRestrictionType, "BAN", "CCTV")
	refdata, err := referencedata.New(refStore)
	require.NoError(t, err)

	reconciler, err := attributes.New(attributestore.New(), refdata)
	require.NoError(t, err)
	differ, err := restrictions.New(restrictionstore.New(), refdata)
	require.NoError(t, err)
	orchestrator, err := merge.New(reconciler, differ, eventsmemory.New(), tx.NoopRunner{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	// Stand-in for the JWT middleware.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithUsername(req.Context(), "test-user")))
		})
	})
	handler.New(orchestrator, reconciler, differ, logger).Routes(r)
	return r
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSyncDomesticStatusLifecycle(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPut, "/prisoner/A1234BC/domestic-status", map[string]string{"value": "M"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Status string `json:"status"`
		ID     int64  `json:"id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "CREATED", created.Status)

	rec = do(t, router, http.MethodPut, "/prisoner/A1234BC/domestic-status", map[string]string{"value": "M"})
	require.Equal(t, http.StatusOK, rec.Code)

	var unchanged struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&unchanged))
	assert.Equal(t, "UNCHANGED", unchanged.Status)

	rec = do(t, router, http.MethodGet, "/prisoner/A1234BC/domestic-status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var current struct {
		Value     string `json:"value"`
		CreatedBy string `json:"createdBy"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&current))
	assert.Equal(t, "M", current.Value)
	assert.Equal(t, "test-user", current.CreatedBy)
}

func TestGetAttributeBeforeAnySyncIsNotFound(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodGet, "/prisoner/A1234BC/number-of-children", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncUnknownDomesticStatusCodeIsNotFound(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPut, "/prisoner/A1234BC/domestic-status", map[string]string{"value": "ZZ"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSyncNegativeNumberOfChildrenIsBadRequest(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPut, "/prisoner/A1234BC/number-of-children", map[string]string{"value": "-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncRejectsUnknownSource(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPut, "/prisoner/A1234BC/domestic-status",
		map[string]string{"value": "M", "source": "MAINFRAME"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetRestrictionsAndListThemBack(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/prisoner/A1234BC/restrictions/reset", map[string]any{
		"restrictions": []map[string]any{
			{"restrictionType": "BAN", "effectiveDate": "2024-01-01", "authorisedUsername": "governor"},
			{"restrictionType": "CCTV", "effectiveDate": "2024-02-01", "authorisedUsername": "governor", "commentText": "supervised"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var diff struct {
		CreatedRestrictions []int64 `json:"createdRestrictions"`
		DeletedRestrictions []int64 `json:"deletedRestrictions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&diff))
	assert.Len(t, diff.CreatedRestrictions, 2)
	assert.Empty(t, diff.DeletedRestrictions)

	rec = do(t, router, http.MethodGet, "/prisoner/A1234BC/restrictions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []struct {
		RestrictionType string `json:"restrictionType"`
		EffectiveDate   string `json:"effectiveDate"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "BAN", listed[0].RestrictionType)
	assert.Equal(t, "2024-01-01", listed[0].EffectiveDate)
}

func TestResetWithMalformedDateIsBadRequest(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/prisoner/A1234BC/restrictions/reset", map[string]any{
		"restrictions": []map[string]any{
			{"restrictionType": "BAN", "effectiveDate": "01/01/2024", "authorisedUsername": "governor"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMergeMovesRestrictionsBetweenPrisoners(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/prisoner/B4321CB/restrictions/reset", map[string]any{
		"restrictions": []map[string]any{
			{"restrictionType": "BAN", "effectiveDate": "2024-01-01", "authorisedUsername": "governor"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/prisoner/merge", map[string]string{
		"keepingPrisonerNumber":  "A1234BC",
		"removingPrisonerNumber": "B4321CB",
		"source":                 "NOMIS",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var outcome struct {
		Restrictions struct {
			CreatedRestrictions []int64 `json:"createdRestrictions"`
			DeletedRestrictions []int64 `json:"deletedRestrictions"`
		} `json:"restrictions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&outcome))
	assert.Len(t, outcome.Restrictions.CreatedRestrictions, 1)
	assert.Len(t, outcome.Restrictions.DeletedRestrictions, 1)

	rec = do(t, router, http.MethodGet, "/prisoner/B4321CB/restrictions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var remaining []any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&remaining))
	assert.Empty(t, remaining)
}

func TestMergeIntoSelfIsBadRequest(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/prisoner/merge", map[string]string{
		"keepingPrisonerNumber":  "A1234BC",
		"removingPrisonerNumber": "A1234BC",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMigrateReplacesHistory(t *testing.T) {
	router := newRouter(t)

	rec := do(t, router, http.MethodPost, "/prisoner/A1234BC/domestic-status/migrate", map[string]any{
		"history": []map[string]any{
			{"value": "S", "createdBy": "legacy-user", "createdTime": "2019-06-01T09:00:00Z"},
		},
		"current": map[string]any{"value": "M", "createdBy": "legacy-user", "createdTime": "2020-06-01T09:00:00Z"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		IDs []int64 `json:"ids"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.IDs, 2)

	rec = do(t, router, http.MethodGet, "/prisoner/A1234BC/domestic-status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var current struct {
		Value string `json:"value"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&current))
	assert.Equal(t, "M", current.Value)
}
