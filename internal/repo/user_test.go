package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

func TestUserRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	got, err := r.Create(ctx, domain.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	u := domain.User{Name: "Alice", Email: "dupe@example.com", PasswordHash: "hash"}
	_, err := r.Create(ctx, u)
	require.NoError(t, err)

	_, err = r.Create(ctx, u)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	created := createTestUser(t, tx)

	got, err := r.GetByEmail(ctx, created.Email)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	_, err := r.GetByEmail(ctx, "nobody@example.com")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_GetByID(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	created := createTestUser(t, tx)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	created := createTestUser(t, tx)

	err := r.UpdatePassword(ctx, created.Email, "new-hash")
	require.NoError(t, err)

	got, err := r.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUserRepo_UpdatePassword_NotFound(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewUserRepo(tx)

	err := r.UpdatePassword(ctx, "ghost@example.com", "new-hash")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
