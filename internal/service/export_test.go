package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/service"
)

func TestExportService_Export(t *testing.T) {
	userID := uuid.New()

	paris := validTrip(userID)
	paris.ID = uuid.New()
	paris.Destination = "Paris, France"

	empty := validTrip(userID)
	empty.ID = uuid.New()
	empty.Destination = "Rome, Italy"

	cost := 30.0
	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return []domain.Trip{paris, empty}, 2, nil
		},
	}
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
			if tripID != paris.ID {
				return nil, nil
			}
			return []domain.Activity{
				{
					TripID:        paris.ID,
					Date:          time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
					Time:          "10:00",
					Label:         "Louvre Museum",
					Location:      "Rue de Rivoli",
					EstimatedCost: &cost,
				},
				{
					TripID: paris.ID,
					Date:   time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
					Label:  "Seine walk",
				},
			}, nil
		},
	}
	svc := service.NewExportService(trips, activities)

	rows, err := svc.Export(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, rows, 3, "two activity rows plus one row for the empty trip")

	assert.Equal(t, paris.ID.String(), rows[0].TripID)
	assert.Equal(t, "Paris, France", rows[0].TripDestination)
	assert.Equal(t, "2025-06-01", rows[0].TripStartDate)
	assert.Equal(t, "2025-06-15", rows[0].TripEndDate)
	assert.Equal(t, "2025-06-03", rows[0].ActivityDate)
	assert.Equal(t, "10:00", rows[0].ActivityTime)
	assert.Equal(t, "Louvre Museum", rows[0].Label)
	require.NotNil(t, rows[0].EstimatedCost)
	assert.Equal(t, 30.0, *rows[0].EstimatedCost)

	assert.Equal(t, "Seine walk", rows[1].Label)
	assert.Nil(t, rows[1].EstimatedCost)

	// The trip with no activities still contributes a bare row.
	assert.Equal(t, empty.ID.String(), rows[2].TripID)
	assert.Empty(t, rows[2].ActivityDate)
	assert.Empty(t, rows[2].Label)
}

func TestExportService_Export_NoTrips(t *testing.T) {
	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}
	svc := service.NewExportService(trips, &mockActivityRepo{})

	rows, err := svc.Export(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestExportService_Export_PagesThroughAllTrips(t *testing.T) {
	userID := uuid.New()

	// 150 trips forces a second page at the repo's 100-row cap.
	var pagesRequested []int
	trips := &mockTripRepo{
		listByUser: func(_ context.Context, _ uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			pagesRequested = append(pagesRequested, p.Page)
			n := 100
			if p.Page == 2 {
				n = 50
			}
			out := make([]domain.Trip, n)
			for i := range out {
				tr := validTrip(userID)
				tr.ID = uuid.New()
				out[i] = tr
			}
			return out, 150, nil
		},
	}
	activities := &mockActivityRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Activity, error) {
			return nil, nil
		},
	}
	svc := service.NewExportService(trips, activities)

	rows, err := svc.Export(context.Background(), userID)

	require.NoError(t, err)
	assert.Len(t, rows, 150)
	assert.Equal(t, []int{1, 2}, pagesRequested)
}
