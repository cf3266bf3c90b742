package reporting

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/httpx"
)

// Handler wires HTTP endpoints for the reports screen.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stats/dashboard", h.Dashboard)
	r.Get("/stats/top-products", h.TopProducts)
	r.Get("/stats/chart", h.Chart)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context(), h.startDate(r), h.endDate(r))
	if err != nil {
		h.logger.Error("dashboard stats failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	top, err := h.service.TopProducts(r.Context(), h.startDate(r), h.endDate(r), limit)
	if err != nil {
		h.logger.Error("top products failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, top)
}

func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.Chart(r.Context(), h.startDate(r), h.endDate(r))
	if err != nil {
		h.logger.Error("sales chart failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) startDate(r *http.Request) string {
	return r.URL.Query().Get("start_date")
}

func (h *Handler) endDate(r *http.Request) string {
	return r.URL.Query().Get("end_date")
}
