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

type SavingHandler struct {
	savingService *services.SavingService
}

func NewSavingHandler(savingService *services.SavingService) *SavingHandler {
	return &SavingHandler{savingService: savingService}
}

type SavingRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Type   string          `json:"type"`
	Reason string          `json:"reason"`
	Date   string          `json:"date" binding:"required"`
}

func (r *SavingRequest) toInput(c *gin.Context) (services.SavingInput, bool) {
	date, err := parseDate(r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return services.SavingInput{}, false
	}
	return services.SavingInput{
		Amount: r.Amount,
		Type:   r.Type,
		Reason: r.Reason,
		Date:   date,
	}, true
}

// @Summary List Savings
// @Description Get the user's savings entries
// @Tags Savings
// @Produce json
// @Param type query string false "Filter by type (manual, auto, spend), comma-separated"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /savings [get]
func (h *SavingHandler) Index(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	filter := repository.SavingFilter{Range: rng}
	if types := c.QueryArray("type"); len(types) > 0 {
		filter.Types = types
	}

	savings, err := h.savingService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.SavingResponse, 0, len(savings))
	for i := range savings {
		responses = append(responses, savings[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"savings": responses})
}

// @Summary Savings Balance
// @Description Get the folded savings balance
// @Tags Savings
// @Produce json
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /savings/balance [get]
func (h *SavingHandler) Balance(c *gin.Context) {
	balance, err := h.savingService.Balance(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// @Summary Create Saving
// @Description Records a savings entry. Spends are refused if they would take the balance negative.
// @Tags Savings
// @Accept json
// @Produce json
// @Param request body SavingRequest true "Saving Fields"
// @Success 201 {object} models.SavingResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /savings [post]
func (h *SavingHandler) Create(c *gin.Context) {
	var req SavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	saving, err := h.savingService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saving.ToResponse())
}

// @Summary Get Saving
// @Description Get one savings entry
// @Tags Savings
// @Produce json
// @Param id path int true "Saving ID"
// @Success 200 {object} models.SavingResponse
// @Security BearerAuth
// @Router /savings/{id} [get]
func (h *SavingHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	saving, err := h.savingService.Get(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saving.ToResponse())
}

// @Summary Update Saving
// @Description Edits a savings entry
// @Tags Savings
// @Accept json
// @Produce json
// @Param id path int true "Saving ID"
// @Param request body SavingRequest true "Saving Fields"
// @Success 200 {object} models.SavingResponse
// @Security BearerAuth
// @Router /savings/{id} [put]
func (h *SavingHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req SavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	saving, err := h.savingService.Update(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, saving.ToResponse())
}

// @Summary Delete Saving
// @Description Removes a savings entry
// @Tags Savings
// @Produce json
// @Param id path int true "Saving ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /savings/{id} [delete]
func (h *SavingHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.savingService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "saving deleted"})
}
