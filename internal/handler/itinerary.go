package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// DayPlanResponse is one date of an itinerary or feed group.
// DisplayDate is the long human form ("Tuesday, January 1, 2025").
type DayPlanResponse struct {
	Date        openapi_types.Date `json:"date"`
	DisplayDate string             `json:"display_date"`
	Activities  []ActivityResponse `json:"activities"`
}

// ItineraryResponse is the GET /api/trips/{tripID}/itinerary body.
// Dates lists the trip's full date range, including days with no activities;
// Days only contains dates that have at least one activity.
type ItineraryResponse struct {
	Trip      TripResponse         `json:"trip"`
	Dates     []openapi_types.Date `json:"dates"`
	Days      []DayPlanResponse    `json:"days"`
	TotalCost float64              `json:"total_cost"`
}

// FeedGroupResponse is one destination's block in the cross-trip feed.
type FeedGroupResponse struct {
	Destination string            `json:"destination"`
	Days        []DayPlanResponse `json:"days"`
}

// FeedResponse is the GET /api/feed body.
type FeedResponse struct {
	Data []FeedGroupResponse `json:"data"`
}

// GetItinerary handles GET /api/trips/{tripID}/itinerary.
// The projection is rebuilt from the current activity set on every call, so
// total_cost always matches exactly the activities attached to the trip.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
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

	trip, itinerary, err := s.itineraries.Itinerary(r.Context(), userID, tripID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rangeDates := trip.DateRange()
	dates := make([]openapi_types.Date, len(rangeDates))
	for i, d := range rangeDates {
		dates[i] = openapi_types.Date{Time: d}
	}

	writeJSON(w, http.StatusOK, ItineraryResponse{
		Trip:      tripToResponse(trip),
		Dates:     dates,
		Days:      dayPlansToResponse(itinerary.Days),
		TotalCost: itinerary.TotalCost,
	})
}

// GetFeed handles GET /api/feed — the user's activities across all trips,
// grouped by destination and then by date.
func (s *Server) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUserID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	groups, err := s.itineraries.Feed(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]FeedGroupResponse, len(groups))
	for i, g := range groups {
		data[i] = FeedGroupResponse{
			Destination: g.Destination,
			Days:        dayPlansToResponse(g.Days),
		}
	}
	writeJSON(w, http.StatusOK, FeedResponse{Data: data})
}

// dayPlansToResponse converts domain day groups to their wire representation.
func dayPlansToResponse(days []domain.DayPlan) []DayPlanResponse {
	out := make([]DayPlanResponse, len(days))
	for i, d := range days {
		activities := make([]ActivityResponse, len(d.Activities))
		for j, a := range d.Activities {
			activities[j] = activityToResponse(a)
		}
		out[i] = DayPlanResponse{
			Date:        openapi_types.Date{Time: d.Date},
			DisplayDate: domain.FormatDisplayDate(d.Date),
			Activities:  activities,
		}
	}
	return out
}
