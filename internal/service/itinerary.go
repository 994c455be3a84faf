package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// ItineraryService builds the read-side projections: the per-trip itinerary
// and the cross-trip activity feed. Both are recomputed from the current
// activity set on every call — there is no cached aggregate to invalidate,
// so the total cost always reflects exactly the activities on record.
type ItineraryService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewItineraryService constructs an ItineraryService backed by the provided repos.
func NewItineraryService(trips repo.TripRepo, activities repo.ActivityRepo) *ItineraryService {
	return &ItineraryService{trips: trips, activities: activities}
}

// Itinerary returns the trip together with its date-grouped activities and
// the total planned cost. Dates with no activities carry no day group; the
// full date range is available from the returned trip's DateRange.
// Returns domain.ErrNotFound for unknown or foreign trip IDs.
func (s *ItineraryService) Itinerary(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, domain.Itinerary, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Itinerary: %w", err)
	}
	if trip.UserID != userID {
		return domain.Trip{}, domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Itinerary: %w", domain.ErrNotFound)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Itinerary: %w", err)
	}

	it := domain.Itinerary{
		Days:      domain.GroupByDate(activities),
		TotalCost: domain.TotalCost(activities),
	}
	return trip, it, nil
}

// Feed returns the user's activities across all their trips, grouped by
// destination and then by date. Always returns a non-nil slice.
func (s *ItineraryService) Feed(ctx context.Context, userID uuid.UUID) ([]domain.FeedGroup, error) {
	feed, err := s.activities.ListFeedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Feed: %w", err)
	}
	groups := domain.GroupByDestinationThenDate(feed)
	if groups == nil {
		return []domain.FeedGroup{}, nil
	}
	return groups, nil
}
