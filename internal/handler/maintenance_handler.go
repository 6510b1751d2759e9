package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// MaintenanceHandler serves the maintenance ticket workflow.
type MaintenanceHandler struct {
	maintenanceService *service.MaintenanceService
}

// NewMaintenanceHandler constructs a MaintenanceHandler.
func NewMaintenanceHandler(maintenanceService *service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService}
}

// Create godoc
// @Summary File a maintenance ticket
// @Description Opens a ticket in Pending status on behalf of the caller.
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.MaintenanceCreateRequest true "Ticket payload"
// @Success 201 {object} response.Envelope{data=models.MaintenanceTicket}
// @Failure 400 {object} response.Envelope
// @Router /maintenance [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.MaintenanceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid ticket payload"))
		return
	}

	ticket, err := h.maintenanceService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, ticket)
}

// List godoc
// @Summary List maintenance tickets
// @Description Students see their own tickets; staff and the admin see all.
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.MaintenanceDetail}
// @Failure 401 {object} response.Envelope
// @Router /maintenance [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tickets, err := h.maintenanceService.List(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, tickets, nil)
}

// UpdateStatus godoc
// @Summary Update a ticket's status
// @Description Moves a ticket through Pending, In Progress and Resolved,
// @Description optionally assigning a staff member by custom id.
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param payload body models.MaintenanceStatusRequest true "Status payload"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /maintenance/{id}/status [put]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	var req models.MaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	if err := h.maintenanceService.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a maintenance ticket
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /maintenance/{id} [delete]
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	if err := h.maintenanceService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
