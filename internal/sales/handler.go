package sales

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

// Handler wires HTTP endpoints for checkout and sale history.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers sales routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sales", h.Create)
	r.Get("/sales", h.History)
	r.Post("/sales/{id}/cancel", h.Cancel)
	r.Post("/sales/{id}/restore", h.Restore)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("decode body: %w", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%v: %w", err, httpx.ErrValidation))
		return
	}

	result, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("record sale failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	sales, err := h.service.History(r.Context(), HistoryRequest{
		Limit:     limit,
		Offset:    offset,
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	})
	if err != nil {
		h.logger.Error("sale history failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	if sales == nil {
		sales = []Sale{}
	}
	httpx.JSON(w, http.StatusOK, sales)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.service.Cancel, "cancel sale failed")
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, h.service.Restore, "restore sale failed")
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) error, msg string) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("invalid sale ID: %w", httpx.ErrValidation))
		return
	}
	if err := fn(r.Context(), id); err != nil {
		h.logger.Error(msg, "id", id, "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}
