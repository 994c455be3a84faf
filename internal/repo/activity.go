package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity by its UUID primary key.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByTripID returns all activities for a trip in insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites the mutable fields of an activity and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// Delete removes an activity by ID. Returns domain.ErrNotFound if it does
	// not exist — a second delete of the same ID fails, it does not no-op.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListFeedByUser returns every activity across all of a user's trips,
	// each joined with its trip's destination, ordered by date then insertion.
	ListFeedByUser(ctx context.Context, userID uuid.UUID) ([]domain.FeedActivity, error)
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (trip_id, date, time, label, location, notes, estimated_cost)
		VALUES (@trip_id, @date, @time, @label, @location, @notes, @estimated_cost)
		RETURNING id, trip_id, date, time, label, location, notes, estimated_cost, created_at, updated_at`

	args := pgx.NamedArgs{
		"trip_id":        activity.TripID,
		"date":           activity.Date,
		"time":           activity.Time,
		"label":          activity.Label,
		"location":       activity.Location,
		"notes":          activity.Notes,
		"estimated_cost": activity.EstimatedCost, // nil becomes NULL
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `
		SELECT id, trip_id, date, time, label, location, notes, estimated_cost, created_at, updated_at
		FROM activities
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTripID returns a trip's activities oldest-insert first, so the
// grouping layer sees insertion order within each date.
func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT id, trip_id, date, time, label, location, notes, estimated_cost, created_at, updated_at
		FROM activities
		WHERE trip_id = @trip_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: scan: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListByTripID: rows: %w", err)
	}

	return activities, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET date           = @date,
		    time           = @time,
		    label          = @label,
		    location       = @location,
		    notes          = @notes,
		    estimated_cost = @estimated_cost,
		    updated_at     = now()
		WHERE id = @id
		RETURNING id, trip_id, date, time, label, location, notes, estimated_cost, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":             activity.ID,
		"date":           activity.Date,
		"time":           activity.Time,
		"label":          activity.Label,
		"location":       activity.Location,
		"notes":          activity.Notes,
		"estimated_cost": activity.EstimatedCost,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanActivity(row)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ListFeedByUser joins activities with their trips to attach the destination,
// scoped to one user across all their trips.
func (r *pgActivityRepo) ListFeedByUser(ctx context.Context, userID uuid.UUID) ([]domain.FeedActivity, error) {
	const q = `
		SELECT a.id, a.trip_id, a.date, a.time, a.label, a.location, a.notes,
		       a.estimated_cost, a.created_at, a.updated_at, t.destination
		FROM activities a
		JOIN trips t ON t.id = a.trip_id
		WHERE t.user_id = @user_id
		ORDER BY a.date, a.created_at, a.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListFeedByUser: %w", err)
	}
	defer rows.Close()

	var feed []domain.FeedActivity
	for rows.Next() {
		var (
			f    domain.FeedActivity
			id   pgtype.UUID
			trip pgtype.UUID
			date pgtype.Date
		)
		err := rows.Scan(&id, &trip, &date, &f.Time, &f.Label, &f.Location, &f.Notes,
			&f.EstimatedCost, &f.CreatedAt, &f.UpdatedAt, &f.Destination)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.ListFeedByUser: scan: %w", err)
		}
		f.ID = uuid.UUID(id.Bytes)
		f.TripID = uuid.UUID(trip.Bytes)
		f.Date = date.Time
		feed = append(feed, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.ListFeedByUser: rows: %w", err)
	}

	return feed, nil
}

// scanActivity maps a single database row into a domain.Activity.
func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a      domain.Activity
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &a.Time, &a.Label, &a.Location, &a.Notes,
		&a.EstimatedCost, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Activity{}, domain.ErrNotFound
		}
		return domain.Activity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	a.Date = date.Time

	return a, nil
}
