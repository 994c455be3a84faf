package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jdelgad/travel-planner/internal/handler"
	"github.com/jdelgad/travel-planner/internal/middleware"
)

// authAs returns a middleware that injects the given user ID into the request
// context, standing in for the JWT authenticator so handler tests never need
// real tokens.
func authAs(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), userID)))
		})
	}
}

// passThrough is a no-op stand-in for the authenticator. Guarded handlers see
// no user ID in context and must answer 401 themselves.
func passThrough(next http.Handler) http.Handler {
	return next
}

// newRouter assembles the full route table around the given Server, with every
// guarded route authenticated as userID. This mirrors how main.go wires it.
func newRouter(srv *handler.Server, userID uuid.UUID) http.Handler {
	return srv.Routes(authAs(userID))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}
