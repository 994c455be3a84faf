// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// TripService implements business logic for Trip operations.
// All operations are scoped to the requesting user: a trip owned by someone
// else behaves exactly like a missing trip (ErrNotFound), so the API never
// leaks whether a foreign trip ID exists.
type TripService struct {
	trips repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{trips: r}
}

// Create validates and persists a new trip for the given user.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.UserID = userID
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip owned by the given user.
// Returns domain.ErrNotFound for unknown or foreign trip IDs.
func (s *TripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.ownedTrip(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns one page of the user's trips in insertion order plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	trips, total, err := s.trips.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return trips, total, nil
}

// Delete removes a trip owned by the given user. The database cascades the
// delete to all of the trip's activities in the same statement, so the trip
// and its activities disappear together or not at all.
// Returns domain.ErrNotFound for unknown or foreign trip IDs.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if err := s.trips.Delete(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ownedTrip fetches a trip and verifies ownership, mapping foreign trips to
// ErrNotFound.
func (s *TripService) ownedTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != userID {
		return domain.Trip{}, domain.ErrNotFound
	}
	return trip, nil
}

// validateTrip enforces the trip creation rules.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - StartDate must not be after EndDate.
//   - Budget, if set, must be non-negative.
//   - Transport modes must each be one of the known tags, no duplicates.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.Budget != nil && *trip.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	seen := make(map[domain.TransportMode]bool, len(trip.Transport))
	for _, m := range trip.Transport {
		if !domain.ValidTransportMode(m) {
			return fmt.Errorf("%w: unknown transport mode %q", domain.ErrValidation, m)
		}
		if seen[m] {
			return fmt.Errorf("%w: duplicate transport mode %q", domain.ErrValidation, m)
		}
		seen[m] = true
	}
	return nil
}
