package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture(userID uuid.UUID) domain.Trip {
	budget := 2500.0
	return domain.Trip{
		UserID:      userID,
		Destination: "Paris, France",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Budget:      &budget,
		Transport:   []domain.TransportMode{domain.TransportFlight, domain.TransportTrain},
	}
}

func TestTripRepo_Create(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	input := tripFixture(user.ID)
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, input.Destination, got.Destination)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	require.NotNil(t, got.Budget)
	assert.Equal(t, *input.Budget, *got.Budget)
	assert.Equal(t, input.Transport, got.Transport)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_NilBudgetAndNoTransport(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	input := tripFixture(user.ID)
	input.Budget = nil
	input.Transport = nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.Budget, "Budget should be nil when not provided")
	assert.Empty(t, got.Transport)
}

func TestTripRepo_GetByID(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	created, err := r.Create(ctx, tripFixture(user.ID))
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Destination, got.Destination)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewTripRepo(tx)

	_, err := r.GetByID(ctx, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListByUser(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	t1 := tripFixture(user.ID)
	t1.Destination = "Rome, Italy"

	t2 := tripFixture(user.ID)
	t2.Destination = "Tokyo, Japan"

	first, err := r.Create(ctx, t1)
	require.NoError(t, err)
	second, err := r.Create(ctx, t2)
	require.NoError(t, err)

	trips, total, err := r.ListByUser(ctx, user.ID, domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, trips, 2)

	// Insertion order: the first created trip comes first.
	assert.Equal(t, first.ID, trips[0].ID)
	assert.Equal(t, second.ID, trips[1].ID)
}

func TestTripRepo_ListByUser_ScopedToOwner(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	alice := createTestUser(t, tx)
	bob := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	_, err := r.Create(ctx, tripFixture(alice.ID))
	require.NoError(t, err)

	trips, total, err := r.ListByUser(ctx, bob.ID, domain.PaginationParams{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, trips, "one user's trips must not leak into another's listing")
}

func TestTripRepo_ListByUser_Pagination(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	for i := 0; i < 3; i++ {
		_, err := r.Create(ctx, tripFixture(user.ID))
		require.NoError(t, err)
	}

	page2, total, err := r.ListByUser(ctx, user.ID, domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 3, total, "total reflects all rows, not just the page")
	assert.Len(t, page2, 1, "second page of 3 rows at limit 2 holds one row")
}

func TestTripRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	created, err := r.Create(ctx, tripFixture(user.ID))
	require.NoError(t, err)

	err = r.Delete(ctx, created.ID)
	require.NoError(t, err)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	r := repo.NewTripRepo(tx)

	err := r.Delete(ctx, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_Twice(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	user := createTestUser(t, tx)
	r := repo.NewTripRepo(tx)

	created, err := r.Create(ctx, tripFixture(user.ID))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	err = r.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "second delete of the same trip must not no-op")
}
