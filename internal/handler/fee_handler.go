package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// FeeHandler serves fee records.
type FeeHandler struct {
	feeService *service.FeeService
}

// NewFeeHandler constructs a FeeHandler.
func NewFeeHandler(feeService *service.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// Create godoc
// @Summary Charge a fee
// @Description Creates a Pending fee record against a student identified by
// @Description custom id. Only student accounts can be charged.
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.FeeCreateRequest true "Fee payload"
// @Success 201 {object} response.Envelope{data=models.FeeRecord}
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req models.FeeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid fee payload"))
		return
	}

	fee, err := h.feeService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fee)
}

// List godoc
// @Summary List fee records
// @Description Students see their own fees; the admin sees all.
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.FeeDetail}
// @Failure 401 {object} response.Envelope
// @Router /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fees, err := h.feeService.List(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, fees, nil)
}

// UpdateStatus godoc
// @Summary Update a fee's payment status
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee ID"
// @Param payload body models.FeeStatusRequest true "Status payload"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fees/{id}/status [put]
func (h *FeeHandler) UpdateStatus(c *gin.Context) {
	var req models.FeeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	if err := h.feeService.UpdateStatus(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a fee record
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Fee ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /fees/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	if err := h.feeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
