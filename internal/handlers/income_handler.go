package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrackhq/fintrack-api/internal/middleware"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/services"
)

type IncomeHandler struct {
	incomeService *services.IncomeService
}

func NewIncomeHandler(incomeService *services.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

type IncomeRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Source      string          `json:"source" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Destination string          `json:"destination"`
	Notes       *string         `json:"notes"`
}

func (r *IncomeRequest) toInput(c *gin.Context) (services.IncomeInput, bool) {
	date, err := parseDate(r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return services.IncomeInput{}, false
	}
	return services.IncomeInput{
		Amount:      r.Amount,
		Source:      r.Source,
		Date:        date,
		Destination: r.Destination,
		Notes:       r.Notes,
	}, true
}

// @Summary List Income
// @Description Get the user's income records
// @Tags Income
// @Produce json
// @Param source query string false "Filter by source"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /income [get]
func (h *IncomeHandler) Index(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	filter := repository.IncomeFilter{
		Source: c.Query("source"),
		Range:  rng,
	}

	incomes, err := h.incomeService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.IncomeResponse, 0, len(incomes))
	for i := range incomes {
		responses = append(responses, incomes[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"income": responses})
}

// @Summary Create Income
// @Description Records an income. Salary credited to the wallet sweeps the wallet into savings first.
// @Tags Income
// @Accept json
// @Produce json
// @Param request body IncomeRequest true "Income Fields"
// @Success 201 {object} models.IncomeResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /income [post]
func (h *IncomeHandler) Create(c *gin.Context) {
	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, source and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	income, err := h.incomeService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, income.ToResponse())
}

// @Summary Get Income
// @Description Get one income record
// @Tags Income
// @Produce json
// @Param id path int true "Income ID"
// @Success 200 {object} models.IncomeResponse
// @Security BearerAuth
// @Router /income/{id} [get]
func (h *IncomeHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	income, err := h.incomeService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, income.ToResponse())
}

// @Summary Update Income
// @Description Edits an income record
// @Tags Income
// @Accept json
// @Produce json
// @Param id path int true "Income ID"
// @Param request body IncomeRequest true "Income Fields"
// @Success 200 {object} models.IncomeResponse
// @Security BearerAuth
// @Router /income/{id} [put]
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req IncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, source and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	income, err := h.incomeService.Update(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, income.ToResponse())
}

// @Summary Delete Income
// @Description Removes an income record
// @Tags Income
// @Produce json
// @Param id path int true "Income ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /income/{id} [delete]
func (h *IncomeHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.incomeService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "income deleted"})
}
