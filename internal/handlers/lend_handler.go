package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrackhq/fintrack-api/internal/middleware"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/repository"
	"github.com/fintrackhq/fintrack-api/internal/services"
)

type LendHandler struct {
	lendService      *services.LendService
	repaymentService *services.RepaymentService
}

func NewLendHandler(lendService *services.LendService, repaymentService *services.RepaymentService) *LendHandler {
	return &LendHandler{
		lendService:      lendService,
		repaymentService: repaymentService,
	}
}

// @Summary List Lends
// @Description Get the user's lend obligations
// @Tags Lends
// @Produce json
// @Param status query string false "Filter by status (pending, settled)"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /lends [get]
func (h *LendHandler) Index(c *gin.Context) {
	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	filter := repository.ObligationFilter{
		Status: c.Query("status"),
		Range:  rng,
	}

	lends, err := h.lendService.List(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.LendResponse, 0, len(lends))
	for i := range lends {
		responses = append(responses, lends[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"lends": responses})
}

// @Summary Create Lend
// @Description Records money lent to someone. The principal leaves the chosen account.
// @Tags Lends
// @Accept json
// @Produce json
// @Param request body ObligationRequest true "Lend Fields"
// @Success 201 {object} models.LendResponse
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /lends [post]
func (h *LendHandler) Create(c *gin.Context) {
	var req ObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "person, amount and date are required"})
		return
	}

	input, ok := req.toInput(c)
	if !ok {
		return
	}

	lend, err := h.lendService.Create(c.Request.Context(), middleware.GetUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lend.ToResponse())
}

// @Summary Get Lend
// @Description Get one lend with its repayment history
// @Tags Lends
// @Produce json
// @Param id path int true "Lend ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /lends/{id} [get]
func (h *LendHandler) Show(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	lend, err := h.lendService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	repayments, err := h.repaymentService.ListForLend(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	repaymentResponses := make([]models.RepaymentResponse, 0, len(repayments))
	for i := range repayments {
		repaymentResponses = append(repaymentResponses, repayments[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{
		"lend":       lend.ToResponse(),
		"repayments": repaymentResponses,
	})
}

// @Summary Update Lend
// @Description Edits a lend. Settled lends cannot be edited.
// @Tags Lends
// @Accept json
// @Produce json
// @Param id path int true "Lend ID"
// @Param request body ObligationRequest true "Lend Fields"
// @Success 200 {object} models.LendResponse
// @Security BearerAuth
// @Router /lends/{id} [put]
func (h *LendHandler) Update(c *gin.Context) {
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

	lend, err := h.lendService.Update(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lend.ToResponse())
}

// @Summary Delete Lend
// @Description Removes a lend and its repayment history
// @Tags Lends
// @Produce json
// @Param id path int true "Lend ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /lends/{id} [delete]
func (h *LendHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.lendService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "lend deleted"})
}

// @Summary Collect Lend Repayment
// @Description Records a repayment received on a lend. Money enters the chosen account.
// @Tags Lends
// @Accept json
// @Produce json
// @Param id path int true "Lend ID"
// @Param request body RepaymentRequest true "Repayment Fields"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /lends/{id}/repayments [post]
func (h *LendHandler) Receive(c *gin.Context) {
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

	repayment, err := h.repaymentService.ReceiveLend(c.Request.Context(), middleware.GetUserID(c), id, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"repayment": repayment.ToResponse(),
		"lend":      repayment.Lend.ToResponse(),
	})
}

// @Summary Lend Repayments
// @Description Get the repayment history of one lend
// @Tags Lends
// @Produce json
// @Param id path int true "Lend ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /lends/{id}/repayments [get]
func (h *LendHandler) Repayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	repayments, err := h.repaymentService.ListForLend(c.Request.Context(), middleware.GetUserID(c), id)
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
