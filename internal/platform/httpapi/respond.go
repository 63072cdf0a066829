// Package httpapi centralizes JSON responses and domain-error translation so
// handler packages stay thin.
package httpapi

import (
	"encoding/json"
	"net/http"

	dErrors "contact-registry/pkg/domain-errors"
)

// ErrorResponse is the wire shape of every error this service returns.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// RespondJSON writes a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// RespondError maps a domain error code to an HTTP status.
func RespondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch dErrors.CodeOf(err) {
	case dErrors.CodeBadRequest:
		status = http.StatusBadRequest
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeConflict:
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// Don't leak collaborator details on unexpected failures.
		message = "internal error"
	}
	RespondJSON(w, status, ErrorResponse{Status: status, Message: message})
}
