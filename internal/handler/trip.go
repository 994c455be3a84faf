package handler

import (
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// CreateTripRequest is the POST /api/trips body. Dates cross the wire in
// "2006-01-02" form via the oapi-codegen runtime Date type.
type CreateTripRequest struct {
	Destination string              `json:"destination"`
	StartDate   openapi_types.Date  `json:"start_date"`
	EndDate     openapi_types.Date  `json:"end_date"`
	Budget      *float64            `json:"budget,omitempty"`
	Transport   []string            `json:"transport,omitempty"`
}

// TripResponse is the wire representation of a trip.
type TripResponse struct {
	ID          string             `json:"id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Budget      *float64           `json:"budget,omitempty"`
	Transport   []string           `json:"transport"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TripListResponse is the paginated GET /api/trips body.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req CreateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	trip := domain.Trip{
		Destination: req.Destination,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Budget:      req.Budget,
		Transport:   transportModes(req.Transport),
	}

	created, err := s.trips.Create(r.Context(), userID, trip)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	params := queryPagination(r)
	trips, total, err := s.trips.List(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
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

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
// Deleting a trip removes all of its activities with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
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

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// tripToResponse converts a domain.Trip into its wire representation.
func tripToResponse(t domain.Trip) TripResponse {
	transport := make([]string, len(t.Transport))
	for i, m := range t.Transport {
		transport[i] = string(m)
	}
	return TripResponse{
		ID:          t.ID.String(),
		Destination: t.Destination,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Budget:      t.Budget,
		Transport:   transport,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// transportModes converts raw transport strings into typed modes.
// Unknown values pass through so the service layer owns the rejection.
func transportModes(values []string) []domain.TransportMode {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.TransportMode, len(values))
	for i, v := range values {
		out[i] = domain.TransportMode(v)
	}
	return out
}
