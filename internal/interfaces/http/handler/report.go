package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appreport "github.com/invoicemonk/backend/internal/application/report"
	"github.com/invoicemonk/backend/internal/domain/report"
)

// ReportHandler serves report generation and CSV export endpoints
type ReportHandler struct {
	BaseHandler
	reportService *appreport.ReportService
	exportService *appreport.ExportService
}

func NewReportHandler(reportService *appreport.ReportService, exportService *appreport.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

type reportRequest struct {
	Type        string `form:"type" binding:"required"`
	From        string `form:"from" binding:"required"`
	To          string `form:"to" binding:"required"`
	Granularity string `form:"granularity"`
	AccountID   string `form:"account_id"`
	Format      string `form:"format"`
}

func (r *reportRequest) toInput(bizID uuid.UUID) (appreport.GenerateInput, error) {
	input := appreport.GenerateInput{
		BusinessID:  bizID,
		Type:        report.Type(r.Type),
		Granularity: report.Granularity(r.Granularity),
	}
	from, err := time.Parse("2006-01-02", r.From)
	if err != nil {
		return input, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", r.To)
	if err != nil {
		return input, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
	}
	input.From = from
	input.To = to
	if r.AccountID != "" {
		id, err := uuid.Parse(r.AccountID)
		if err != nil {
			return input, fmt.Errorf("invalid account_id")
		}
		input.AccountID = &id
	}
	return input, nil
}

// Generate handles GET /businesses/:businessId/reports
func (h *ReportHandler) Generate(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}

	var req reportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	input, err := req.toInput(bizID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reportService.Generate(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Export handles GET /businesses/:businessId/reports/export. The
// format query parameter selects csv or json; the response body is the
// exported artifact and the manifest digest covers these exact bytes.
func (h *ReportHandler) Export(c *gin.Context) {
	bizID, err := businessID(c)
	if err != nil {
		h.BadRequest(c, "Invalid business ID")
		return
	}
	userID, err := actorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req reportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	input, err := req.toInput(bizID)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	format, err := appreport.ParseFormat(req.Format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	export, err := h.exportService.Export(c.Request.Context(), input, format, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Header("X-Export-Digest", export.Manifest.ContentDigest)
	c.Header("X-Export-Manifest-ID", export.Manifest.ID.String())
	c.Data(http.StatusOK, format.ContentType(), export.Content)
}
