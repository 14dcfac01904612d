package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrackhq/fintrack-api/internal/middleware"
	"github.com/fintrackhq/fintrack-api/internal/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// @Summary Dashboard
// @Description Get the consolidated financial overview. Balances are all-time; totals honor the date range.
// @Tags Dashboard
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} services.DashboardSummary
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) Show(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.Summary(c.Request.Context(), middleware.GetUserID(c), rng)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
