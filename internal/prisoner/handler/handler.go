// Package handler exposes the prisoner sync surface over HTTP: attribute
// reads and writes, restriction reads and resets, migration, and the merge
// endpoint. The acting user comes from the authenticated request and is
// passed explicitly into every write.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contact-registry/internal/platform/httpapi"
	"contact-registry/internal/platform/middleware"
	"contact-registry/internal/prisoner"
	"contact-registry/internal/prisoner/attributes"
	"contact-registry/internal/prisoner/merge"
	"contact-registry/internal/prisoner/restrictions"
	"contact-registry/pkg/domain"
	dErrors "contact-registry/pkg/domain-errors"
)

// Handler is the thin HTTP layer over the prisoner services.
type Handler struct {
	orchestrator *merge.Orchestrator
	attributes   *attributes.Reconciler
	restrictions *restrictions.Differ
	logger       *slog.Logger
}

func New(orchestrator *merge.Orchestrator, attrs *attributes.Reconciler, differ *restrictions.Differ, logger *slog.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		attributes:   attrs,
		restrictions: differ,
		logger:       logger,
	}
}

// Routes mounts the prisoner endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/prisoner", func(r chi.Router) {
		r.Post("/merge", h.handleMerge)

		r.Route("/{prisonerNumber}", func(r chi.Router) {
			r.Get("/domestic-status", h.handleGetAttribute(prisoner.AttributeDomesticStatus))
			r.Put("/domestic-status", h.handleSyncAttribute(prisoner.AttributeDomesticStatus))
			r.Post("/domestic-status/migrate", h.handleMigrateAttribute(prisoner.AttributeDomesticStatus))

			r.Get("/number-of-children", h.handleGetAttribute(prisoner.AttributeNumberOfChildren))
			r.Put("/number-of-children", h.handleSyncAttribute(prisoner.AttributeNumberOfChildren))
			r.Post("/number-of-children/migrate", h.handleMigrateAttribute(prisoner.AttributeNumberOfChildren))

			r.Get("/restrictions", h.handleListRestrictions)
			r.Post("/restrictions/reset", h.handleResetRestrictions)
		})
	})
}

func (h *Handler) handleGetAttribute(kind prisoner.AttributeKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prisonerNumber := domain.PrisonerNumber(chi.URLParam(r, "prisonerNumber"))

		attr, err := h.attributes.Current(r.Context(), prisonerNumber, kind)
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}
		httpapi.RespondJSON(w, http.StatusOK, toAttributeResponse(attr))
	}
}

func (h *Handler) handleSyncAttribute(kind prisoner.AttributeKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prisonerNumber := domain.PrisonerNumber(chi.URLParam(r, "prisonerNumber"))

		req, err := parseSyncAttributeRequest(r)
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}

		actingUser, err := actingUser(r)
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}

		outcome, err := h.orchestrator.SyncAttribute(r.Context(), prisonerNumber, kind, req.value, req.source, actingUser)
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}
		httpapi.RespondJSON(w, statusForSync(outcome.Status), toSyncResponse(outcome))
	}
}

func (h *Handler) handleMigrateAttribute(kind prisoner.AttributeKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prisonerNumber := domain.PrisonerNumber(chi.URLParam(r, "prisonerNumber"))

		history, current, err := parseMigrateRequest(r)
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}

		ids, err := h.orchestrator.MigrateAttribute(r.Context(), prisonerNumber, kind, history, current)
		if err != nil {
			httpapi.RespondError(w, err)
			return
		}
		httpapi.RespondJSON(w, http.StatusOK, toMigrateResponse(ids))
	}
}

func (h *Handler) handleListRestrictions(w http.ResponseWriter, r *http.Request) {
	prisonerNumber := domain.PrisonerNumber(chi.URLParam(r, "prisonerNumber"))

	rows, err := h.restrictions.List(r.Context(), prisonerNumber)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, toRestrictionsResponse(rows))
}

func (h *Handler) handleResetRestrictions(w http.ResponseWriter, r *http.Request) {
	prisonerNumber := domain.PrisonerNumber(chi.URLParam(r, "prisonerNumber"))

	req, err := parseResetRequest(r)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}

	actingUser, err := actingUser(r)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}

	diff, err := h.orchestrator.ResetRestrictions(r.Context(), prisonerNumber, req.inputs, req.source, actingUser)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, toDiffResponse(diff))
}

func (h *Handler) handleMerge(w http.ResponseWriter, r *http.Request) {
	req, err := parseMergeRequest(r)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}

	actingUser, err := actingUser(r)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}

	outcome, err := h.orchestrator.MergePrisoners(r.Context(), req.keeping, req.removing, req.source, actingUser)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}
	httpapi.RespondJSON(w, http.StatusOK, toMergeResponse(outcome))
}

func actingUser(r *http.Request) (string, error) {
	username := middleware.Username(r.Context())
	if username == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "request has no authenticated username")
	}
	return username, nil
}

func statusForSync(status prisoner.SyncStatus) int {
	if status == prisoner.SyncCreated {
		return http.StatusCreated
	}
	return http.StatusOK
}
