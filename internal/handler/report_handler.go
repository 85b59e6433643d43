package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"brickledger/internal/service"
	"brickledger/internal/storage/workbook"
)

// ReportHandler serves the derived reports and snapshot export/backup.
type ReportHandler struct {
	register service.RegisterService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(register service.RegisterService) *ReportHandler {
	return &ReportHandler{register: register}
}

// MonthlySummary handles GET /api/v1/reports/monthly-summary
func (h *ReportHandler) MonthlySummary(c *gin.Context) {
	RespondOK(c, h.register.MonthlySummary(c.Request.Context()))
}

// GSTReport handles GET /api/v1/reports/gst
func (h *ReportHandler) GSTReport(c *gin.Context) {
	RespondOK(c, h.register.GSTReport(c.Request.Context()))
}

// Export handles GET /api/v1/export
// Streams the full register workbook (all three sheets) as a download.
func (h *ReportHandler) Export(c *gin.Context) {
	filename, data, err := h.register.Export(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, workbook.ContentType, data)
}

// Backup handles POST /api/v1/backup
func (h *ReportHandler) Backup(c *gin.Context) {
	location, err := h.register.Backup(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"location": location})
}
