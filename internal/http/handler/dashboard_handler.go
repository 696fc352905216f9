package handler

import (
	"net/http"

	"github.com/outreach-crm/outreach-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Get godoc
// @Summary Dashboard
// @Description Account and pipeline counts, outreach this week and today's to-do totals
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardDTO
// @Failure 500 {object} domain.APIError
// @Security CookieAuth
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.GetDashboard(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to load dashboard")
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}
