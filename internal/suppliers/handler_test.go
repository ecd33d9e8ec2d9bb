package suppliers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*chi.Mux, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(repo))
	r := chi.NewRouter()
	r.Route("/suppliers", handler.MountRoutes)
	return r, repo
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateSupplier(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Fasteners","email":"orders@acme.example"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Supplier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Acme Fasteners", created.Name)
}

func TestHandlerCreateSupplierValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"","email":"not-an-email"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "name")
	assert.Contains(t, problem.Errors, "email")
}

func TestHandlerGetSupplierNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/suppliers/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerDeleteReferencedSupplier(t *testing.T) {
	router, repo := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Fasteners"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	repo.referenced[1] = true

	rec = doJSON(t, router, http.MethodDelete, "/suppliers/1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerUpdateSupplierEmptyPatch(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/suppliers", `{"name":"Acme Fasteners"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/suppliers/1", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
