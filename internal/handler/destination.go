package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// DestinationRequest is the shared POST/PUT body for catalog destinations.
type DestinationRequest struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Days        int      `json:"days"`
	Description *string  `json:"description,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Featured    *bool    `json:"featured,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// DestinationResponse is the wire representation of a catalog destination.
type DestinationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Price       float64   `json:"price"`
	Days        int       `json:"days"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Amenities   []string  `json:"amenities"`
	Featured    bool      `json:"featured"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DestinationListResponse is the paginated GET /api/destinations body.
type DestinationListResponse struct {
	Data       []DestinationResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// CreateDestination handles POST /api/destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	created, err := s.catalog.Create(r.Context(), requestToDestination(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// GetDestination handles GET /api/destinations/{destinationID}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	dest, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, destinationToResponse(dest))
}

// ListDestinations handles GET /api/destinations.
// Supports ?page=, ?limit=, and ?active=true to hide inactive entries.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	params := queryPagination(r)
	activeOnly := r.URL.Query().Get("active") == "true"

	dests, total, err := s.catalog.List(r.Context(), activeOnly, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]DestinationResponse, len(dests))
	for i, d := range dests {
		data[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, DestinationListResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// UpdateDestination handles PUT /api/destinations/{destinationID}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	var req DestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	dest := requestToDestination(req)
	dest.ID = id

	updated, err := s.catalog.Update(r.Context(), dest)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

// DeleteDestination handles DELETE /api/destinations/{destinationID}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "destinationID")
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DestinationEvents handles GET /api/destinations/events.
// It streams catalog change events over Server-Sent Events so every open
// admin tab converges on the same state without polling. The subscription
// lasts until the client disconnects.
func (s *Server) DestinationEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	events, cancel := s.catalog.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()
		}
	}
}

// --- mapping helpers --------------------------------------------------------

// requestToDestination converts the request body to a domain.Destination.
// Active defaults to true so newly created entries are visible immediately.
func requestToDestination(req DestinationRequest) domain.Destination {
	dest := domain.Destination{
		Name:        req.Name,
		Location:    req.Location,
		Price:       req.Price,
		Days:        req.Days,
		Description: derefString(req.Description),
		ImageURL:    derefString(req.ImageURL),
		Amenities:   req.Amenities,
		Active:      true,
	}
	if req.Featured != nil {
		dest.Featured = *req.Featured
	}
	if req.Active != nil {
		dest.Active = *req.Active
	}
	return dest
}

// destinationToResponse converts a domain.Destination to its wire representation.
func destinationToResponse(d domain.Destination) DestinationResponse {
	amenities := d.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return DestinationResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Location:    d.Location,
		Price:       d.Price,
		Days:        d.Days,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Amenities:   amenities,
		Featured:    d.Featured,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
