// Package handler exposes contact search over HTTP. It parses and validates
// transport concerns and delegates matching to the search service.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contact-registry/internal/platform/httpapi"
	"contact-registry/internal/search"
)

// Handler is the thin HTTP layer over the search service.
type Handler struct {
	service *search.Service
	logger  *slog.Logger
}

func New(service *search.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Routes mounts the search endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/contact/search", h.handleSearch)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}

	page, err := h.service.Search(r.Context(), req.query, req.page, req.sort)
	if err != nil {
		httpapi.RespondError(w, err)
		return
	}

	httpapi.RespondJSON(w, http.StatusOK, toSearchResponse(page))
}
