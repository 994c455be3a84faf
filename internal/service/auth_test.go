package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
	"github.com/jdelgad/travel-planner/internal/service"
)

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	create         func(ctx context.Context, user domain.User) (domain.User, error)
	getByEmail     func(ctx context.Context, email string) (domain.User, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.User, error)
	updatePassword func(ctx context.Context, email, passwordHash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.create(ctx, user)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.getByEmail(ctx, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return m.updatePassword(ctx, email, passwordHash)
}

// compile-time check: mockUserRepo must satisfy repo.UserRepo.
var _ repo.UserRepo = (*mockUserRepo)(nil)

var testSecret = []byte("test-secret")

func echoUserRepo() *mockUserRepo {
	return &mockUserRepo{
		create: func(_ context.Context, u domain.User) (domain.User, error) {
			u.ID = uuid.New()
			return u, nil
		},
	}
}

// ---- Register tests --------------------------------------------------------

func TestAuthService_Register(t *testing.T) {
	svc := service.NewAuthService(echoUserRepo(), testSecret)

	got, err := svc.Register(context.Background(), "Alice", "Alice@Example.com", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email, "emails are normalized to lowercase")
	assert.NotEqual(t, "hunter2hunter2", got.PasswordHash, "password must never be stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("hunter2hunter2")))
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc := service.NewAuthService(echoUserRepo(), testSecret)

	_, err := svc.Register(context.Background(), "Alice", "not-an-email", "hunter2hunter2")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := service.NewAuthService(echoUserRepo(), testSecret)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "short")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Register_MissingName(t *testing.T) {
	svc := service.NewAuthService(echoUserRepo(), testSecret)

	_, err := svc.Register(context.Background(), "  ", "alice@example.com", "hunter2hunter2")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	users := &mockUserRepo{
		create: func(_ context.Context, _ domain.User) (domain.User, error) {
			return domain.User{}, domain.ErrConflict
		},
	}
	svc := service.NewAuthService(users, testSecret)

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter2hunter2")

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- Login tests -----------------------------------------------------------

// userWithPassword returns a stored user whose hash matches the given password.
func userWithPassword(t *testing.T, password string) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return domain.User{
		ID:           uuid.New(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}
}

func TestAuthService_Login(t *testing.T) {
	stored := userWithPassword(t, "hunter2hunter2")
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, email string) (domain.User, error) {
			require.Equal(t, "alice@example.com", email)
			return stored, nil
		},
	}
	svc := service.NewAuthService(users, testSecret)

	user, token, err := svc.Login(context.Background(), "Alice@Example.COM ", "hunter2hunter2")

	require.NoError(t, err)
	assert.Equal(t, stored.ID, user.ID)
	require.NotEmpty(t, token)

	// The issued token must round-trip through VerifyToken.
	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	stored := userWithPassword(t, "hunter2hunter2")
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, _ string) (domain.User, error) { return stored, nil },
	}
	svc := service.NewAuthService(users, testSecret)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong-password")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, _ string) (domain.User, error) {
			return domain.User{}, domain.ErrNotFound
		},
	}
	svc := service.NewAuthService(users, testSecret)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")

	// Unknown emails and wrong passwords must be indistinguishable.
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// ---- ResetPassword tests ---------------------------------------------------

func TestAuthService_ResetPassword(t *testing.T) {
	var gotEmail, gotHash string
	users := &mockUserRepo{
		updatePassword: func(_ context.Context, email, hash string) error {
			gotEmail, gotHash = email, hash
			return nil
		},
	}
	svc := service.NewAuthService(users, testSecret)

	err := svc.ResetPassword(context.Background(), "Alice@Example.com", "new-password-1")

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", gotEmail)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(gotHash), []byte("new-password-1")))
}

func TestAuthService_ResetPassword_UnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		updatePassword: func(_ context.Context, _, _ string) error { return domain.ErrNotFound },
	}
	svc := service.NewAuthService(users, testSecret)

	err := svc.ResetPassword(context.Background(), "nobody@example.com", "new-password-1")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthService_ResetPassword_ShortPassword(t *testing.T) {
	svc := service.NewAuthService(&mockUserRepo{}, testSecret)

	err := svc.ResetPassword(context.Background(), "alice@example.com", "short")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- VerifyToken tests -----------------------------------------------------

func TestAuthService_VerifyToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(&mockUserRepo{}, testSecret)

	_, err := svc.VerifyToken("not.a.jwt")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_VerifyToken_WrongSecret(t *testing.T) {
	stored := userWithPassword(t, "hunter2hunter2")
	users := &mockUserRepo{
		getByEmail: func(_ context.Context, _ string) (domain.User, error) { return stored, nil },
	}

	issuer := service.NewAuthService(users, []byte("issuer-secret"))
	_, token, err := issuer.Login(context.Background(), stored.Email, "hunter2hunter2")
	require.NoError(t, err)

	verifier := service.NewAuthService(users, []byte("different-secret"))
	_, err = verifier.VerifyToken(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
