package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// VisitorHandler serves the visitor log.
type VisitorHandler struct {
	visitorService *service.VisitorService
}

// NewVisitorHandler constructs a VisitorHandler.
func NewVisitorHandler(visitorService *service.VisitorService) *VisitorHandler {
	return &VisitorHandler{visitorService: visitorService}
}

// Register godoc
// @Summary Register an expected visitor
// @Description Logs a visitor for the calling student. The entry starts as
// @Description Pending until staff or the admin decide on it.
// @Tags visitors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.VisitorCreateRequest true "Visitor payload"
// @Success 201 {object} response.Envelope{data=models.VisitorRecord}
// @Failure 400 {object} response.Envelope
// @Router /visitors [post]
func (h *VisitorHandler) Register(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.VisitorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid visitor payload"))
		return
	}

	visitor, err := h.visitorService.Register(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, visitor)
}

// List godoc
// @Summary List visitor records
// @Description Students see visitors they registered; staff and the admin
// @Description see the full log.
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.VisitorDetail}
// @Failure 401 {object} response.Envelope
// @Router /visitors [get]
func (h *VisitorHandler) List(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	visitors, err := h.visitorService.List(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, visitors, nil)
}

// Decide godoc
// @Summary Approve or reject a visitor
// @Tags visitors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Visitor record ID"
// @Param payload body models.VisitorDecisionRequest true "Decision payload"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /visitors/{id}/decision [put]
func (h *VisitorHandler) Decide(c *gin.Context) {
	var req models.VisitorDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	if err := h.visitorService.Decide(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a visitor record
// @Tags visitors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Visitor record ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /visitors/{id} [delete]
func (h *VisitorHandler) Delete(c *gin.Context) {
	if err := h.visitorService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
