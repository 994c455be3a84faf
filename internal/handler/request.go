package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/middleware"
)

// decodeJSON strictly decodes the request body into dst.
// Unknown fields are rejected at the boundary, matching the validated-input
// rule: loosely shaped bodies never reach the service layer.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// requestUserID returns the authenticated user's ID from the request context.
// The auth middleware guarantees it is present on guarded routes; a missing
// ID means a wiring bug, surfaced as 401 rather than a panic.
func requestUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// queryPagination reads optional ?page= and ?limit= query parameters.
// Non-numeric values are ignored and fall back to the defaults.
func queryPagination(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}

// Pagination is the page metadata block attached to list responses.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
