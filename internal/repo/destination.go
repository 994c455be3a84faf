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

// DestinationRepo defines the persistence operations for catalog destinations.
type DestinationRepo interface {
	// Create inserts a new destination and returns the persisted record.
	Create(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// GetByID retrieves a destination by primary key.
	// Returns domain.ErrNotFound if no destination with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error)

	// List returns one page of destinations ordered by name, plus the total
	// count for the same filter. When activeOnly is true, inactive entries
	// are excluded from both the page and the count.
	List(ctx context.Context, activeOnly bool, p domain.PaginationParams) ([]domain.Destination, int64, error)

	// Update overwrites the mutable fields of a destination and returns the
	// updated record. Returns domain.ErrNotFound if it does not exist.
	Update(ctx context.Context, dest domain.Destination) (domain.Destination, error)

	// Delete removes a destination by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgDestinationRepo is the Postgres implementation of DestinationRepo.
type pgDestinationRepo struct {
	db db
}

// NewDestinationRepo constructs a DestinationRepo backed by the provided db connection.
func NewDestinationRepo(db db) DestinationRepo {
	return &pgDestinationRepo{db: db}
}

func (r *pgDestinationRepo) Create(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		INSERT INTO destinations (name, location, price, days, description, image_url, amenities, featured, active)
		VALUES (@name, @location, @price, @days, @description, @image_url, @amenities, @featured, @active)
		RETURNING id, name, location, price, days, description, image_url, amenities, featured, active, created_at, updated_at`

	row := r.db.QueryRow(ctx, q, destinationArgs(dest))
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	const q = `
		SELECT id, name, location, price, days, description, image_url, amenities, featured, active, created_at, updated_at
		FROM destinations
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) List(ctx context.Context, activeOnly bool, p domain.PaginationParams) ([]domain.Destination, int64, error) {
	// @active_only short-circuits the filter: when false the OR arm matches
	// every row, so a single query serves both the public and admin listings.
	const countQ = `SELECT count(*) FROM destinations WHERE (NOT @active_only OR active)`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"active_only": activeOnly}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: count: %w", err)
	}

	const q = `
		SELECT id, name, location, price, days, description, image_url, amenities, featured, active, created_at, updated_at
		FROM destinations
		WHERE (NOT @active_only OR active)
		ORDER BY name, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"active_only": activeOnly,
		"limit":       p.Limit,
		"offset":      p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: %w", err)
	}
	defer rows.Close()

	var dests []domain.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.DestinationRepo.List: scan: %w", err)
		}
		dests = append(dests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.DestinationRepo.List: rows: %w", err)
	}

	return dests, total, nil
}

func (r *pgDestinationRepo) Update(ctx context.Context, dest domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name        = @name,
		    location    = @location,
		    price       = @price,
		    days        = @days,
		    description = @description,
		    image_url   = @image_url,
		    amenities   = @amenities,
		    featured    = @featured,
		    active      = @active,
		    updated_at  = now()
		WHERE id = @id
		RETURNING id, name, location, price, days, description, image_url, amenities, featured, active, created_at, updated_at`

	args := destinationArgs(dest)
	args["id"] = dest.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanDestination(row)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.DestinationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM destinations WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DestinationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// destinationArgs builds the shared NamedArgs set for Create and Update.
func destinationArgs(d domain.Destination) pgx.NamedArgs {
	amenities := d.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return pgx.NamedArgs{
		"name":        d.Name,
		"location":    d.Location,
		"price":       d.Price,
		"days":        d.Days,
		"description": d.Description,
		"image_url":   d.ImageURL,
		"amenities":   amenities,
		"featured":    d.Featured,
		"active":      d.Active,
	}
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d  domain.Destination
		id pgtype.UUID
	)

	err := s.Scan(&id, &d.Name, &d.Location, &d.Price, &d.Days, &d.Description,
		&d.ImageURL, &d.Amenities, &d.Featured, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Destination{}, domain.ErrNotFound
		}
		return domain.Destination{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
