package tools

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

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewService(newMockRepository()))
	r := chi.NewRouter()
	r.Route("/tools", handler.MountRoutes)
	return r
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

func TestHandlerCreateTool(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/tools", `{"name":"Impact Driver","vendor":"Makita","total_owned":5,"total_avail":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Tool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(5), created.TotalOwned)
}

func TestHandlerCreateToolAvailAboveOwned(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/tools", `{"name":"Impact Driver","vendor":"Makita","total_owned":2,"total_avail":3}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "total_avail")
}

func TestHandlerGetToolNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/tools/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerAdjustCounter(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/tools", `{"name":"Impact Driver","vendor":"Makita","total_owned":5,"total_avail":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// No body adjusts by one.
	rec = doJSON(t, router, http.MethodPut, "/tools/1/available/decrement", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var update CounterUpdate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
	assert.Equal(t, int64(5), update.Previous)
	assert.Equal(t, int64(4), update.Current)

	rec = doJSON(t, router, http.MethodPut, "/tools/1/available/increment", `{"amount":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
	assert.Equal(t, int64(5), update.Current)
}

func TestHandlerAdjustCounterInvalid(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/tools", `{"name":"Impact Driver","vendor":"Makita","total_owned":5,"total_avail":5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Unknown field name.
	rec = doJSON(t, router, http.MethodPut, "/tools/1/broken/increment", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Raising availability above ownership.
	rec = doJSON(t, router, http.MethodPut, "/tools/1/available/increment", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
