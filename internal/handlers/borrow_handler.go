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

type BorrowHandler struct {
	borrowService    *services.BorrowService
	repaymentService *services.RepaymentService
}

func NewBorrowHandler(borrowService *services.BorrowService, repaymentService *services.RepaymentService) *BorrowHandler {
	return &BorrowHandler{
		borrowService:    borrowService,
		repaymentService: repaymentService,
	}
}

// ObligationRequest is shared by borrow and lend endpoints. Account is the
// destination account for borrows and the source account for lends.
type ObligationRequest struct {
	Person      string          `json:"person" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description *string         `json:"description"`
	Account     string          `json:"account"`
	Date        string          `json:"date" binding:"required"`
}

func (r *ObligationRequest) toInput(c *gin.Context) (services.ObligationInput, bool) {
	date, err := parseDate(r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return services.ObligationInput{}, false
	}
	return services.ObligationInput{
		Person:      r.Person,
		Amount:      r.Amount,
		Description: r.Description,
		Account:     r.Account,
		Date:        date,
	}, true
}

// RepaymentRequest carries a repayment against an obligation
type RepaymentRequest struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Date    string          `json:"date" binding:"required"`
	Account string          `json:"account"`
	Notes   *string         `json:"notes"`
}

func (r *RepaymentRequest) toInput(c *gin.Context) (services.RepaymentInput, bool) {
	date, err := parseDate(r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return services.RepaymentInput{}, false
	}
	return services.RepaymentInput{
		Amount:  r.Amount,
		Date:    date,
		Account: r.Account,
		Notes:   r.Notes,
	}, true
}

// @Summary List Borrows
// @Description Get the user's borrow obligations
// @Tags Borrows
// @Produce json
// @Param status query string false "Filter by status (pending, approved, rejected, settled)"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /borrows [get]
func (h *BorrowHandler) Index(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	filter := repository.ObligationFilter{
		Status: c.Query("status"),
		Range:  rng,
	}

	borrows, err := h.borrowService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.BorrowResponse, 0, len(borrows))
	for i := range borrows {
		responses = append(responses, borrows[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"borrows": responses})
}

// @Summary Create Borrow
// @Description Records money borrowed from someone. The principal is credited to the chosen account.
// @Tags Borrows
// @Accept json
// @Produce json
// @Param request body ObligationRequest true "Borrow Fields"
// @Success 201 {object} models.BorrowResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /borrows [post]
func (h *BorrowHandler) Create(c *gin.Context) {
	var req ObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "person, amount and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	borrow, err := h.borrowService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, borrow.ToResponse())
}

// @Summary Get Borrow
// @Description Get one borrow with its repayment history
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /borrows/{id} [get]
func (h *BorrowHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	borrow, err := h.borrowService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	repayments, err := h.repaymentService.ListForBorrow(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	repaymentResponses := make([]models.RepaymentResponse, 0, len(repayments))
	for i := range repayments {
		repaymentResponses = append(repaymentResponses, repayments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"borrow":     borrow.ToResponse(),
		"repayments": repaymentResponses,
	})
}

// @Summary Update Borrow
// @Description Edits a borrow. Settled borrows cannot be edited.
// @Tags Borrows
// @Accept json
// @Produce json
// @Param id path int true "Borrow ID"
// @Param request body ObligationRequest true "Borrow Fields"
// @Success 200 {object} models.BorrowResponse
// @Security BearerAuth
// @Router /borrows/{id} [put]
func (h *BorrowHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req ObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "person, amount and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	borrow, err := h.borrowService.Update(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, borrow.ToResponse())
}

// @Summary Delete Borrow
// @Description Removes a borrow and its repayment history
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /borrows/{id} [delete]
func (h *BorrowHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.borrowService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "borrow deleted"})
}

// @Summary Approve Borrow
// @Description Marks a pending borrow as acknowledged
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow ID"
// @Success 200 {object} models.BorrowResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /borrows/{id}/approve [post]
func (h *BorrowHandler) Approve(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	borrow, err := h.borrowService.Approve(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, borrow.ToResponse())
}

// @Summary Reject Borrow
// @Description Marks a pending borrow as disputed
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow ID"
// @Success 200 {object} models.BorrowResponse
// @Failure 409 {object} map[string]string
// @Security BearerAuth
// @Router /borrows/{id}/reject [post]
func (h *BorrowHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	borrow, err := h.borrowService.Reject(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, borrow.ToResponse())
}

// @Summary Repay Borrow
// @Description Records a payment toward a borrow. Money leaves the chosen account.
// @Tags Borrows
// @Accept json
// @Produce json
// @Param id path int true "Borrow ID"
// @Param request body RepaymentRequest true "Repayment Fields"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /borrows/{id}/repayments [post]
func (h *BorrowHandler) Repay(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req RepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	repayment, err := h.repaymentService.PayBorrow(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"repayment": repayment.ToResponse(),
		"borrow":    repayment.Borrow.ToResponse(),
	})
}

// @Summary Borrow Repayments
// @Description Get the repayment history of one borrow
// @Tags Borrows
// @Produce json
// @Param id path int true "Borrow ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /borrows/{id}/repayments [get]
func (h *BorrowHandler) Repayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	repayments, err := h.repaymentService.ListForBorrow(c.Request.Context(), middleware.GetUserID(c), id)
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
