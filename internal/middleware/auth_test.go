package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdelgad/travel-planner/internal/middleware"
)

type stubVerifier struct {
	verifyTokenFn func(token string) (uuid.UUID, error)
}

func (s *stubVerifier) VerifyToken(token string) (uuid.UUID, error) {
	return s.verifyTokenFn(token)
}

func TestAuthenticator_missingToken(t *testing.T) {
	verifier := &stubVerifier{
		verifyTokenFn: func(string) (uuid.UUID, error) {
			t.Fatal("verifier should not be called without a token")
			return uuid.Nil, nil
		},
	}

	h := middleware.NewAuthenticator(verifier)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}),
	)

	for _, header := range []string{"", "Bearer ", "Basic abc123", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Contains(t, rec.Body.String(), "unauthorized")
	}
}

func TestAuthenticator_invalidToken(t *testing.T) {
	verifier := &stubVerifier{
		verifyTokenFn: func(string) (uuid.UUID, error) {
			return uuid.Nil, errors.New("token expired")
		},
	}

	h := middleware.NewAuthenticator(verifier)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body["error"]["code"])
}

func TestAuthenticator_validToken(t *testing.T) {
	userID := uuid.New()
	verifier := &stubVerifier{
		verifyTokenFn: func(token string) (uuid.UUID, error) {
			require.Equal(t, "good-token", token)
			return userID, nil
		},
	}

	var gotID uuid.UUID
	var gotOK bool
	h := middleware.NewAuthenticator(verifier)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, gotOK = middleware.UserID(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, userID, gotID)
}

func TestUserID_absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.UserID(req.Context())
	assert.False(t, ok)
}
