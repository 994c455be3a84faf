package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// DestinationService implements business logic for the admin destination catalog.
// Destinations are global; there is no per-user scoping here.
type DestinationService struct {
	dests repo.DestinationRepo
}

// NewDestinationService constructs a DestinationService backed by the provided repo.
func NewDestinationService(r repo.DestinationRepo) *DestinationService {
	return &DestinationService{dests: r}
}

// Create validates and persists a new catalog destination.
func (s *DestinationService) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	if err := validateDestination(dest); err != nil {
		return domain.Destination{}, err
	}
	result, err := s.dests.Create(ctx, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single destination by ID.
func (s *DestinationService) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	result, err := s.dests.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.GetByID: %w", err)
	}
	return result, nil
}

// List returns one page of destinations plus the total count for the filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DestinationService) List(ctx context.Context, activeOnly bool, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	dests, total, err := s.dests.List(ctx, activeOnly, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	if dests == nil {
		dests = []domain.Destination{}
	}
	return dests, total, nil
}

// Update validates and persists changes to an existing destination.
func (s *DestinationService) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	if err := validateDestination(dest); err != nil {
		return domain.Destination{}, err
	}
	result, err := s.dests.Update(ctx, dest)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a destination by ID.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.dests.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	return nil
}

// validateDestination enforces business rules common to Create and Update.
func validateDestination(dest domain.Destination) error {
	if strings.TrimSpace(dest.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(dest.Location) == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if dest.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if dest.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1", domain.ErrValidation)
	}
	return nil
}
