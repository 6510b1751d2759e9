package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// ExportHandler streams rendered documents as downloads.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// VisitorLogCSV godoc
// @Summary Download the visitor log as CSV
// @Tags exports
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Router /exports/visitors.csv [get]
func (h *ExportHandler) VisitorLogCSV(c *gin.Context) {
	result, err := h.exportService.VisitorLogCSV(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Blob(c, result.ContentType, result.Filename, result.Payload)
}

// FeeStatementPDF godoc
// @Summary Download a fee statement as PDF
// @Description Students receive a statement of their own fees; the admin
// @Description receives the full statement across all students.
// @Tags exports
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /exports/fees.pdf [get]
func (h *ExportHandler) FeeStatementPDF(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := ""
	if claims.Role == models.RoleStudent {
		studentID = claims.UserID
	}

	result, err := h.exportService.FeeStatementPDF(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Blob(c, result.ContentType, result.Filename, result.Payload)
}
