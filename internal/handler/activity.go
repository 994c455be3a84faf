package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// CreateActivityRequest is the POST /api/trips/{tripID}/activities body.
type CreateActivityRequest struct {
	Date          openapi_types.Date `json:"date"`
	Time          *string            `json:"time,omitempty"`
	Label         string             `json:"label"`
	Location      *string            `json:"location,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	EstimatedCost *float64           `json:"estimated_cost,omitempty"`
}

// UpdateActivityRequest is the PATCH /api/activities/{activityID} body.
// Every field is optional; omitted fields are left unchanged.
type UpdateActivityRequest struct {
	Date          *openapi_types.Date `json:"date,omitempty"`
	Time          *string             `json:"time,omitempty"`
	Label         *string             `json:"label,omitempty"`
	Location      *string             `json:"location,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	EstimatedCost *float64            `json:"estimated_cost,omitempty"`
}

// ActivityResponse is the wire representation of an activity.
// Optional fields come back as omitted rather than empty strings.
type ActivityResponse struct {
	ID            string             `json:"id"`
	TripID        string             `json:"trip_id"`
	Date          openapi_types.Date `json:"date"`
	Time          *string            `json:"time,omitempty"`
	Label         string             `json:"label"`
	Location      *string            `json:"location,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	EstimatedCost *float64           `json:"estimated_cost,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ActivityListResponse is the GET /api/trips/{tripID}/activities body.
type ActivityListResponse struct {
	Data []ActivityResponse `json:"data"`
}

// CreateActivity handles POST /api/trips/{tripID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var req CreateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	activity := domain.Activity{
		TripID:        tripID,
		Date:          req.Date.Time,
		Time:          derefString(req.Time),
		Label:         req.Label,
		Location:      derefString(req.Location),
		Notes:         derefString(req.Notes),
		EstimatedCost: req.EstimatedCost,
	}

	created, err := s.activities.Create(r.Context(), userID, activity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

// ListActivities handles GET /api/trips/{tripID}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	activities, err := s.activities.ListByTrip(r.Context(), userID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		data[i] = activityToResponse(a)
	}
	writeJSON(w, http.StatusOK, ActivityListResponse{Data: data})
}

// UpdateActivity handles PATCH /api/activities/{activityID}.
// Only the fields present in the body are changed.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	activityID, err := pathUUID(r, "activityID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var req UpdateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	patch := domain.ActivityPatch{
		Time:     req.Time,
		Label:    req.Label,
		Location: req.Location,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		d := req.Date.Time
		patch.Date = &d
	}
	if req.EstimatedCost != nil {
		cost := req.EstimatedCost
		patch.EstimatedCost = &cost
	}

	updated, err := s.activities.Update(r.Context(), userID, activityID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

// DeleteActivity handles DELETE /api/activities/{activityID}.
// A second delete of the same ID returns 404, not 204.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	activityID, err := pathUUID(r, "activityID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.activities.Delete(r.Context(), userID, activityID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// activityToResponse converts a domain.Activity to its wire representation.
// Empty strings become nil pointers for optional JSON fields so they are
// omitted from the response rather than sent as empty strings.
func activityToResponse(a domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:            a.ID.String(),
		TripID:        a.TripID.String(),
		Date:          openapi_types.Date{Time: a.Date},
		Time:          nilIfEmpty(a.Time),
		Label:         a.Label,
		Location:      nilIfEmpty(a.Location),
		Notes:         nilIfEmpty(a.Notes),
		EstimatedCost: a.EstimatedCost,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// derefString safely dereferences a *string, returning "" when nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nilIfEmpty converts an empty string to a nil pointer.
// Used when mapping domain strings to optional API response fields.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
