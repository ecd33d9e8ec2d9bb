package builds

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
	Builds []Build `json:"builds"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePage(r.URL.Query())
	req := ListBuildsRequest{
		Name:   r.URL.Query().Get("name"),
		SKU:    r.URL.Query().Get("sku"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}

	result, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondError(w, "list builds", err)
		return
	}
	if result == nil {
		result = []Build{}
	}

	httpx.JSON(w, http.StatusOK, listResponse{Builds: result, Total: total, Limit: page.Limit, Offset: page.Offset})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	build, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get build", err)
		return
	}

	httpx.JSON(w, http.StatusOK, build)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBuildRequest
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
		h.respondError(w, "create build", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateBuildRequest
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
		h.respondError(w, "update build", err)
		return
	}

	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.respondError(w, "delete build", err)
		return
	}

	httpx.JSON(w, http.StatusOK, deleted)
}

func (h *Handler) ListParts(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	parts, err := h.service.ListParts(r.Context(), buildID)
	if err != nil {
		h.respondError(w, "list build parts", err)
		return
	}
	if parts == nil {
		parts = []BuildPart{}
	}

	httpx.JSON(w, http.StatusOK, parts)
}

func (h *Handler) GetPart(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseParam(w, r, "itemID")
	if !ok {
		return
	}

	part, err := h.service.GetPart(r.Context(), buildID, itemID)
	if err != nil {
		h.respondError(w, "get build part", err)
		return
	}

	httpx.JSON(w, http.StatusOK, part)
}

func (h *Handler) AddPart(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	var req AddRelationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}
	if err := shared.CheckStruct(h.validator, req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	part, err := h.service.AddPart(r.Context(), buildID, req)
	if err != nil {
		h.respondError(w, "add build part", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, part)
}

func (h *Handler) UpdatePart(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseParam(w, r, "itemID")
	if !ok {
		return
	}

	var req UpdateRelationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}
	if err := shared.CheckStruct(h.validator, req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	part, err := h.service.UpdatePart(r.Context(), buildID, itemID, req)
	if err != nil {
		h.respondError(w, "update build part", err)
		return
	}

	httpx.JSON(w, http.StatusOK, part)
}

func (h *Handler) DeletePart(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := h.parseParam(w, r, "itemID")
	if !ok {
		return
	}

	part, err := h.service.DeletePart(r.Context(), buildID, itemID)
	if err != nil {
		h.respondError(w, "delete build part", err)
		return
	}

	httpx.JSON(w, http.StatusOK, part)
}

func (h *Handler) ListTools(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	links, err := h.service.ListTools(r.Context(), buildID)
	if err != nil {
		h.respondError(w, "list build tools", err)
		return
	}
	if links == nil {
		links = []BuildTool{}
	}

	httpx.JSON(w, http.StatusOK, links)
}

func (h *Handler) GetTool(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}
	toolID, ok := h.parseParam(w, r, "toolID")
	if !ok {
		return
	}

	link, err := h.service.GetTool(r.Context(), buildID, toolID)
	if err != nil {
		h.respondError(w, "get build tool", err)
		return
	}

	httpx.JSON(w, http.StatusOK, link)
}

func (h *Handler) AddTool(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}

	var req AddRelationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}
	if err := shared.CheckStruct(h.validator, req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	link, err := h.service.AddTool(r.Context(), buildID, req)
	if err != nil {
		h.respondError(w, "add build tool", err)
		return
	}

	httpx.JSON(w, http.StatusCreated, link)
}

func (h *Handler) UpdateTool(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}
	toolID, ok := h.parseParam(w, r, "toolID")
	if !ok {
		return
	}

	var req UpdateRelationRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", "request body is not valid JSON")
		return
	}
	if err := shared.CheckStruct(h.validator, req); err != nil {
		httpx.RespondError(w, err)
		return
	}

	link, err := h.service.UpdateTool(r.Context(), buildID, toolID, req)
	if err != nil {
		h.respondError(w, "update build tool", err)
		return
	}

	httpx.JSON(w, http.StatusOK, link)
}

func (h *Handler) DeleteTool(w http.ResponseWriter, r *http.Request) {
	buildID, ok := h.parseParam(w, r, "id")
	if !ok {
		return
	}
	toolID, ok := h.parseParam(w, r, "toolID")
	if !ok {
		return
	}

	link, err := h.service.DeleteTool(r.Context(), buildID, toolID)
	if err != nil {
		h.respondError(w, "delete build tool", err)
		return
	}

	httpx.JSON(w, http.StatusOK, link)
}

func (h *Handler) parseParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", name+" must be an integer")
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
