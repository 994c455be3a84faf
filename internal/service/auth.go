package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jdelgad/travel-planner/internal/domain"
	"github.com/jdelgad/travel-planner/internal/repo"
)

// tokenTTL is how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

// minPasswordLen is the minimum accepted password length for register and reset.
const minPasswordLen = 8

// AuthService implements account registration, login, and password reset.
// Passwords are stored as bcrypt hashes; sessions are stateless HS256 JWTs
// carrying the user ID as subject.
type AuthService struct {
	users  repo.UserRepo
	secret []byte
}

// NewAuthService constructs an AuthService backed by the provided UserRepo.
// The secret signs and verifies session tokens.
func NewAuthService(users repo.UserRepo, secret []byte) *AuthService {
	return &AuthService{users: users, secret: secret}
}

// Register creates a new account with a bcrypt-hashed password.
// Returns domain.ErrValidation for malformed input and domain.ErrConflict
// when the email is already registered.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return domain.User{}, err
	}
	if strings.TrimSpace(name) == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the user with a signed session
// token. Unknown emails and wrong passwords both return domain.ErrUnauthorized
// so callers cannot probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
		}
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", domain.ErrUnauthorized)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.AuthService.Login: %w", err)
	}
	return user, token, nil
}

// ResetPassword replaces the password for an existing account.
// Returns domain.ErrNotFound if the email is not registered.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = normalizeEmail(email)
	if err := validateCredentials(email, newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: hash: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("service.AuthService.ResetPassword: %w", err)
	}
	return nil
}

// VerifyToken parses and validates a session token, returning the user ID it
// was issued for. Returns domain.ErrUnauthorized for anything that does not
// check out — bad signature, expiry, or a malformed subject.
func (s *AuthService) VerifyToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("service.AuthService.VerifyToken: %w", domain.ErrUnauthorized)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("service.AuthService.VerifyToken: %w", domain.ErrUnauthorized)
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("service.AuthService.VerifyToken: %w", domain.ErrUnauthorized)
	}
	return userID, nil
}

// issueToken signs a fresh HS256 token with the user ID as subject.
func (s *AuthService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// validateCredentials enforces the shared rules for register and reset.
func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: email is not a valid address", domain.ErrValidation)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	return nil
}

// normalizeEmail lowercases and trims an email so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
