package items

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/stockroom/stockroom/internal/platform/httpx"
	"github.com/stockroom/stockroom/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: shared.NewValidator()}
}

type listResponse struct {
	Items  []Item `json:"items"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePage(r.URL.Query())
	req := ListItemsRequest{
		Name:   r.URL.Query().Get("name"),
		SKU:    r.URL.Query().Get("sku"),
		Type:   r.URL.Query().Get("type"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if raw := r.URL.Query().Get("supplier"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "supplier must be an integer")
			return
		}
		req.SupplierID = &id
	}

	result, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "list items", err)
		return
	}
	if result == nil {
		result = []Item{}
	}

	httpx.JSON(w, http.StatusOK, listResponse{Items: result, Total: total, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get item", err)
		return
	}

	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}
	req.Normalize()
	if err := shared.CheckStruct(h.validator, req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, "create item", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}
	req.Normalize()
	if err := shared.CheckStruct(h.validator, req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update item", err)
		return
	}

	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, "delete item", err)
		return
	}

	httpx.JSON(w, http.StatusOK, deleted)
}

func (h *Handler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req AdjustQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}

	updated, err := h.service.AdjustQuantity(r.Context(), id, req.Delta)
	if err != nil {
		h.respondError(w, "adjust item quantity", err)
		return
	}

	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "item ID must be an integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrConflict) && !errors.Is(err, httpx.ErrValidation) {
		h.logger.Error(op+" failed", "error", err)
	}
	httpx.RespondError(w, err)
}
