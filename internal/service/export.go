package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// ExportService assembles a flat export of one user's trips and activities.
type ExportService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, activities repo.ActivityRepo) *ExportService {
	return &ExportService{trips: trips, activities: activities}
}

// exportPageLimit fetches all trips in one page per call; 100 is the repo cap.
const exportPageLimit = 100

// Export returns one ExportRow per activity across all of the user's trips.
// Trips with no activities contribute one row with empty activity fields, so
// every trip is represented in the output. Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}

	page := 1
	for {
		p := domain.PaginationParams{Page: page, Limit: exportPageLimit}
		trips, total, err := s.trips.ListByUser(ctx, userID, p)
		if err != nil {
			return nil, fmt.Errorf("service.ExportService.Export: %w", err)
		}

		for _, trip := range trips {
			activities, err := s.activities.ListByTripID(ctx, trip.ID)
			if err != nil {
				return nil, fmt.Errorf("service.ExportService.Export: %w", err)
			}
			rows = append(rows, tripRows(trip, activities)...)
		}

		if int64(page*exportPageLimit) >= total {
			break
		}
		page++
	}

	return rows, nil
}

// tripRows flattens one trip and its activities into export rows.
func tripRows(trip domain.Trip, activities []domain.Activity) []domain.ExportRow {
	base := domain.ExportRow{
		TripID:          trip.ID.String(),
		TripDestination: trip.Destination,
		TripStartDate:   trip.StartDate.Format("2006-01-02"),
		TripEndDate:     trip.EndDate.Format("2006-01-02"),
	}

	if len(activities) == 0 {
		return []domain.ExportRow{base}
	}

	rows := make([]domain.ExportRow, 0, len(activities))
	for _, a := range activities {
		row := base
		row.ActivityDate = a.Date.Format("2006-01-02")
		row.ActivityTime = a.Time
		row.Label = a.Label
		row.Location = a.Location
		row.Notes = a.Notes
		row.EstimatedCost = a.EstimatedCost
		rows = append(rows, row)
	}
	return rows
}
