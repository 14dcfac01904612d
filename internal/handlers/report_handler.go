package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/fintrackhq/fintrack-api/internal/middleware"
	"github.com/fintrackhq/fintrack-api/internal/models"
	"github.com/fintrackhq/fintrack-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type ReportRequest struct {
	Type string `json:"type" binding:"required"`
}

// @Summary List Reports
// @Description Get the user's generated reports
// @Tags Reports
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) Index(c *gin.Context) {
	reports, err := h.reportService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, reports[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"reports": responses})
}

// @Summary Generate Report
// @Description Generates a report file (summary_csv, summary_xlsx or balance_pdf) for the date range
// @Tags Reports
// @Accept json
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param request body ReportRequest true "Report Type"
// @Success 201 {object} models.ReportResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report type is required"})
		return
	}

	rng, ok := dateRangeFromQuery(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	var report *models.Report
	var err error
	switch req.Type {
	case models.ReportTypeSummaryCSV:
		report, err = h.reportService.GenerateSummaryCSV(ctx, userID, rng)
	case models.ReportTypeSummaryXLSX:
		report, err = h.reportService.GenerateSummaryXLSX(ctx, userID, rng)
	case models.ReportTypeBalancePDF:
		report, err = h.reportService.GenerateBalancePDF(ctx, userID, rng)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("unknown report type %q", req.Type),
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report.ToResponse())
}

// @Summary Download Report
// @Description Downloads a generated report file
// @Tags Reports
// @Produce octet-stream
// @Param id path int true "Report ID"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /reports/{id}/download [get]
func (h *ReportHandler) Download(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	report, file, err := h.reportService.Open(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	filename := filepath.Base(report.FilePath)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.File(file.Name())
}

// @Summary Delete Report
// @Description Removes a report record and its file
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} map[string]string
// @Security BearerAuth
// @Router /reports/{id} [delete]
func (h *ReportHandler) Destroy(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.reportService.Delete(c.Request.Context(), middleware.GetUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}
