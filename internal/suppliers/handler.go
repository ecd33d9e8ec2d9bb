package suppliers

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
	Suppliers []Supplier `json:"suppliers"`
	Total     int        `json:"total"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePage(r.URL.Query())
	req := ListSuppliersRequest{
		Name:   r.URL.Query().Get("name"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	result, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "list suppliers", err)
		return
	}
	if result == nil {
		result = []Supplier{}
	}

	httpx.JSON(w, http.StatusOK, listResponse{Suppliers: result, Total: total, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	supplier, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get supplier", err)
		return
	}

	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSupplierRequest
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
		h.respondError(w, "create supplier", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var req UpdateSupplierRequest
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
		h.respondError(w, "update supplier", err)
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
		h.respondError(w, "delete supplier", err)
		return
	}

	httpx.JSON(w, http.StatusOK, deleted)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "supplier ID must be an integer")
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
