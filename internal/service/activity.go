package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// ActivityService implements business logic for Activity operations.
// It holds both repos because every mutation must verify the parent trip
// exists and belongs to the requesting user before touching activities.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates the activity against its parent trip, then persists it.
// The activity's date must fall within the trip's [start_date, end_date]
// range; out-of-range dates are rejected rather than silently accepted.
// Returns domain.ErrNotFound if the trip is unknown or owned by another user,
// domain.ErrValidation if input violates business rules.
func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, activity domain.Activity) (domain.Activity, error) {
	trip, err := s.ownedTrip(ctx, userID, activity.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	if err := validateActivity(activity, trip); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return result, nil
}

// ListByTrip returns all activities of a trip owned by the given user.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ActivityService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Activity, error) {
	if _, err := s.ownedTrip(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	return activities, nil
}

// Update applies a partial patch to an existing activity. Fields left nil in
// the patch are untouched; the patched record is re-validated against the
// owning trip's date range before it is written.
// Returns domain.ErrNotFound if the activity is unknown or belongs to a trip
// owned by another user.
func (s *ActivityService) Update(ctx context.Context, userID, activityID uuid.UUID, patch domain.ActivityPatch) (domain.Activity, error) {
	current, trip, err := s.ownedActivity(ctx, userID, activityID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}

	patched := patch.Apply(current)
	if err := validateActivity(patched, trip); err != nil {
		return domain.Activity{}, err
	}

	result, err := s.activities.Update(ctx, patched)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an activity. Deleting an already-deleted activity fails with
// domain.ErrNotFound — the operation is deliberately not idempotent, so
// clients notice double-submits.
func (s *ActivityService) Delete(ctx context.Context, userID, activityID uuid.UUID) error {
	if _, _, err := s.ownedActivity(ctx, userID, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if err := s.activities.Delete(ctx, activityID); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	return nil
}

// ownedTrip fetches a trip and verifies ownership, mapping foreign trips to
// ErrNotFound.
func (s *ActivityService) ownedTrip(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	if trip.UserID != userID {
		return domain.Trip{}, domain.ErrNotFound
	}
	return trip, nil
}

// ownedActivity fetches an activity and its parent trip, verifying the trip
// belongs to the given user.
func (s *ActivityService) ownedActivity(ctx context.Context, userID, activityID uuid.UUID) (domain.Activity, domain.Trip, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return domain.Activity{}, domain.Trip{}, err
	}
	trip, err := s.ownedTrip(ctx, userID, activity.TripID)
	if err != nil {
		return domain.Activity{}, domain.Trip{}, err
	}
	return activity, trip, nil
}

// validateActivity enforces the rules common to Create and Update.
//   - Label must be non-empty (whitespace-only labels are rejected).
//   - Date is required and must fall within the owning trip's range.
//   - Time, if set, must be a valid "15:04" clock time.
//   - EstimatedCost, if set, must be non-negative.
func validateActivity(activity domain.Activity, trip domain.Trip) error {
	if strings.TrimSpace(activity.Label) == "" {
		return fmt.Errorf("%w: label is required", domain.ErrValidation)
	}
	if activity.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !trip.ContainsDate(activity.Date) {
		return fmt.Errorf("%w: date %s is outside the trip's date range", domain.ErrValidation,
			activity.Date.Format("2006-01-02"))
	}
	if activity.Time != "" {
		if _, err := time.Parse("15:04", activity.Time); err != nil {
			return fmt.Errorf("%w: time must be in HH:MM format", domain.ErrValidation)
		}
	}
	if activity.EstimatedCost != nil && *activity.EstimatedCost < 0 {
		return fmt.Errorf("%w: estimated_cost must not be negative", domain.ErrValidation)
	}
	return nil
}
