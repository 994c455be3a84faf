package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier validates a session token and returns the user ID it was
// issued for. Satisfied by *service.AuthService.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey int

const userIDKey ctxKey = iota

// NewAuthenticator returns a middleware that requires a "Bearer <token>"
// Authorization header, verifies it, and stores the authenticated user ID in
// the request context. Requests without a valid token get a 401 JSON body in
// the same error envelope the handlers use.
func NewAuthenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, "missing bearer token")
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user's ID stored by NewAuthenticator.
// The second return is false when the request did not pass the middleware.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// WithUserID returns a context carrying the given user ID.
// Exposed for handler tests, which have no middleware in front of them.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

// writeUnauthorized emits the shared error envelope without importing the
// handler package (which would be an import cycle).
func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": "unauthorized", "message": message},
	})
}
