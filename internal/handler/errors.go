package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error onto the wire: the domain sentinels become
// 404/422/409/401 with a descriptive body, anything else is logged and
// surfaced as a bare 500 so storage failures never leak internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error: ErrorDetail{Code: "conflict", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: ErrorDetail{Code: "unauthorized", Message: "invalid credentials"},
		})
	default:
		slog.ErrorContext(r.Context(), "internal error", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal_error", Message: "internal server error"},
		})
	}
}

// writeBadRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body, bad path parameter).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error: ErrorDetail{Code: "validation_error", Message: message},
	})
}

// writeJSON writes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: destination is required"
// → "destination is required". Falls back to the sentinel's own name when the
// wrap carries no extra detail.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{"validation error: ", "conflict: ", "not found: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
