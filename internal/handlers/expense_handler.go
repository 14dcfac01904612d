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

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	Description *string         `json:"description"`
}

func (r *ExpenseRequest) toInput(c *gin.Context) (services.ExpenseInput, bool) {
	date, err := parseDate(r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return services.ExpenseInput{}, false
	}
	return services.ExpenseInput{
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        date,
		Description: r.Description,
	}, true
}

// @Summary List Expenses
// @Description Get the user's expenses
// @Tags Expenses
// @Produce json
// @Param category query string false "Filter by category"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /expenses [get]
func (h *ExpenseHandler) Index(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	filter := repository.ExpenseFilter{
		Category: c.Query("category"),
		Range:    rng,
	}

	expenses, err := h.expenseService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		responses = append(responses, expenses[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"expenses": responses})
}

// @Summary Create Expense
// @Description Records an expense against the wallet
// @Tags Expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense Fields"
// @Success 201 {object} models.ExpenseResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, category and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense.ToResponse())
}

// @Summary Get Expense
// @Description Get one expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense.ToResponse())
}

// @Summary Update Expense
// @Description Edits an expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense Fields"
// @Success 200 {object} models.ExpenseResponse
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, category and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense.ToResponse())
}

// @Summary Delete Expense
// @Description Removes an expense
// @Tags Expenses
// @Produce json
// @Param id path int true "Expense ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
