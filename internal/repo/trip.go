// Package repo contains all database access logic for the Travel Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jdelgad/travel-planner/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// ListByUser returns one page of a user's trips in insertion order
	// (created_at ascending) along with the user's total trip count.
	ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Delete removes a trip by ID. The activities foreign key is declared
	// ON DELETE CASCADE, so the trip and its activities go in one statement.
	// Returns domain.ErrNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (user_id, destination, start_date, end_date, budget, transport)
		VALUES (@user_id, @destination, @start_date, @end_date, @budget, @transport)
		RETURNING id, user_id, destination, start_date, end_date, budget, transport, created_at, updated_at`

	args := pgx.NamedArgs{
		"user_id":     trip.UserID,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget, // nil becomes NULL
		"transport":   transportToStrings(trip.Transport),
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a trip by primary key.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, user_id, destination, start_date, end_date, budget, transport, created_at, updated_at
		FROM trips
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTrip(row)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns one page of trips for a user, oldest first, plus the total count.
func (r *pgTripRepo) ListByUser(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	const countQ = `SELECT count(*) FROM trips WHERE user_id = @user_id`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"user_id": userID}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: count: %w", err)
	}

	const q = `
		SELECT id, user_id, destination, start_date, end_date, budget, transport, created_at, updated_at
		FROM trips
		WHERE user_id = @user_id
		ORDER BY created_at, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListByUser: rows: %w", err)
	}

	return trips, total, nil
}

// Delete removes a trip by primary key; the DB cascades to its activities.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single database row into a domain.Trip.
// It handles the UUID, date, nullable budget, and transport array conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		userID    pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		transport []string
	)

	err := s.Scan(&id, &userID, &t.Destination, &startDate, &endDate, &t.Budget, &transport, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.Transport = transportFromStrings(transport)

	return t, nil
}

// transportToStrings converts the typed mode slice to a plain string slice
// for the text[] column. Never returns nil so the column stores '{}' rather
// than NULL for trips without transport preferences.
func transportToStrings(modes []domain.TransportMode) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}

func transportFromStrings(values []string) []domain.TransportMode {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.TransportMode, len(values))
	for i, v := range values {
		out[i] = domain.TransportMode(v)
	}
	return out
}
