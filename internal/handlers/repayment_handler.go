package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrackhq/fintrack-api/internal/middleware"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/services"
)

type RepaymentHandler struct {
	repaymentService *services.RepaymentService
}

func NewRepaymentHandler(repaymentService *services.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentService: repaymentService}
}

// @Summary List Repayments
// @Description Get all repayments across borrows and lends
// @Tags Repayments
// @Produce json
// @Param type query string false "Filter by obligation type (all, borrow, lend)"
// @Param status query string false "Filter by obligation status (all, pending, settled)"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /repayments [get]
func (h *RepaymentHandler) Index(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	filter := repository.RepaymentFilter{
		Type:   c.DefaultQuery("type", "all"),
		Status: c.DefaultQuery("status", "all"),
		Range:  rng,
	}

	switch filter.Type {
	case "all", "borrow", "lend":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be all, borrow or lend"})
		return
	}

	repayments, err := h.repaymentService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.RepaymentResponse, 0, len(repayments))
	for i := range repayments {
		responses = append(responses, repayments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"repayments": responses})
}
