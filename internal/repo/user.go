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

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a new user and returns the persisted record.
	// Returns domain.ErrConflict if the email is already registered.
	Create(ctx context.Context, user domain.User) (domain.User, error)

	// GetByEmail retrieves a user by email address.
	// Returns domain.ErrNotFound if no user with that email exists.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// UpdatePassword replaces the stored password hash for the given email.
	// Returns domain.ErrNotFound if no user with that email exists.
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (name, email, password_hash)
		VALUES (@name, @email, @password_hash)
		RETURNING id, name, email, password_hash, created_at, updated_at`

	args := pgx.NamedArgs{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: email taken: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const q = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = @email`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByEmail: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = @password_hash,
		    updated_at    = now()
		WHERE email = @email`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"email": email, "password_hash": passwordHash})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.UpdatePassword: %w", domain.ErrNotFound)
	}
	return nil
}

// scanUser maps a single database row into a domain.User.
func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)

	err := s.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
