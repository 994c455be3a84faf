package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jdelgad/travel-planner/internal/handler"
)

func TestGetHealth_200(t *testing.T) {
	srv := handler.NewServer(nil, nil, nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	newRouter(srv, uuid.New()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetOpenAPI_ServesEmbeddedDocument(t *testing.T) {
	doc := []byte("openapi: 3.0.3\n")
	srv := handler.NewServer(nil, nil, nil, nil, nil, nil, doc)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()

	newRouter(srv, uuid.New()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(doc), rec.Body.String())
}

func TestGetOpenAPI_404_WhenDisabled(t *testing.T) {
	srv := handler.NewServer(nil, nil, nil, nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()

	newRouter(srv, uuid.New()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
