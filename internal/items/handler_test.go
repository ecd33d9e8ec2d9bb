package items

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
	r.Route("/items", handler.MountRoutes)
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

func TestHandlerCreateItem(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Hex Bolt","sku":"BOLT-001","type":"part","quantity":40}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "BOLT-001", created.SKU)
	assert.Equal(t, int64(40), created.Quantity)
}

func TestHandlerCreateItemWithoutType(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Widget","sku":"W-100","quantity":5,"supplier_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, ItemTypePart, created.Type)
	assert.Equal(t, int64(5), created.Quantity)
	require.NotNil(t, created.SupplierID)
	assert.Equal(t, int64(1), *created.SupplierID)
}

func TestHandlerCreateItemValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"","sku":"BOLT-001","type":"gadget","quantity":-1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var problem struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Contains(t, problem.Errors, "name")
	assert.Contains(t, problem.Errors, "type")
	assert.Contains(t, problem.Errors, "quantity")
}

func TestHandlerCreateItemMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCreateItemDuplicateSKU(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Hex Bolt","sku":"BOLT-001","type":"part"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/items", `{"name":"Other Bolt","sku":"BOLT-001","type":"part"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerGetItemNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/items/99", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerGetItemBadID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/items/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUpdateItem(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Plywood","sku":"PLY-100","type":"material","quantity":12}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/items/1", `{"name":"Birch Plywood"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Birch Plywood", updated.Name)
	assert.Equal(t, "PLY-100", updated.SKU)
}

func TestHandlerUpdateItemEmptyPatch(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Plywood","sku":"PLY-100","type":"material"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPatch, "/items/1", `{}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlerDeleteItem(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Plywood","sku":"PLY-100","type":"material"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var deleted Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, int64(1), deleted.ID)

	rec = doJSON(t, router, http.MethodDelete, "/items/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerAdjustQuantity(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/items", `{"name":"Hex Bolt","sku":"BOLT-001","type":"part","quantity":10}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/items/1/quantity", `{"delta":-4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, int64(6), updated.Quantity)

	rec = doJSON(t, router, http.MethodPut, "/items/1/quantity", `{"delta":-100}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandlerListItems(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{
		`{"name":"Hex Bolt","sku":"BOLT-001","type":"part"}`,
		`{"name":"Plywood","sku":"PLY-100","type":"material"}`,
		`{"name":"Wood Screw","sku":"SCRW-010","type":"part"}`,
	} {
		rec := doJSON(t, router, http.MethodPost, "/items", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/items?type=part", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []Item `json:"items"`
		Total int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "BOLT-001", resp.Items[0].SKU)
	assert.Equal(t, "SCRW-010", resp.Items[1].SKU)
}

func TestHandlerListItemsCapsLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/items?limit=9999", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Limit int `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Limit)
}
