package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

type roomRequestService interface {
	Submit(ctx context.Context, requesterID string) (*models.RoomRequest, error)
	ListMine(ctx context.Context, requesterID string) ([]models.RoomRequest, error)
	ListPending(ctx context.Context) ([]models.PendingRequest, error)
	Approve(ctx context.Context, actorID, requestID, roomID string) error
	Reject(ctx context.Context, actorID, requestID string) error
}

// RoomRequestHandler serves the room allocation request workflow.
type RoomRequestHandler struct {
	requestService roomRequestService
}

// NewRoomRequestHandler constructs a RoomRequestHandler.
func NewRoomRequestHandler(svc roomRequestService) *RoomRequestHandler {
	return &RoomRequestHandler{requestService: svc}
}

type approveRequestPayload struct {
	RoomID string `json:"room_id" binding:"required"`
}

// Submit godoc
// @Summary Submit a room request
// @Description Files a pending room request for the caller. Students who
// @Description already have a room, or an open pending request, are rejected.
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Success 201 {object} response.Envelope{data=models.RoomRequest}
// @Failure 401 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /room-requests [post]
func (h *RoomRequestHandler) Submit(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	request, err := h.requestService.Submit(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, request)
}

// ListMine godoc
// @Summary List the caller's room requests
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.RoomRequest}
// @Failure 401 {object} response.Envelope
// @Router /room-requests/mine [get]
func (h *RoomRequestHandler) ListMine(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	requests, err := h.requestService.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, requests, nil)
}

// ListPending godoc
// @Summary List pending room requests
// @Description Returns the review queue with requester details. Requests
// @Description whose requester no longer resolves are flagged invalid.
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.PendingRequest}
// @Failure 403 {object} response.Envelope
// @Router /room-requests/pending [get]
func (h *RoomRequestHandler) ListPending(c *gin.Context) {
	requests, err := h.requestService.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, requests, nil)
}

// Approve godoc
// @Summary Approve a room request
// @Description Assigns the chosen room to the requester and finalises the
// @Description request. The assignment and the status change commit together
// @Description or not at all.
// @Tags room-requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param payload body approveRequestPayload true "Room to assign"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /room-requests/{id}/approve [post]
func (h *RoomRequestHandler) Approve(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var payload approveRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "room_id is required"))
		return
	}

	if err := h.requestService.Approve(c.Request.Context(), claims.UserID, c.Param("id"), payload.RoomID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Reject godoc
// @Summary Reject a room request
// @Tags room-requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /room-requests/{id}/reject [post]
func (h *RoomRequestHandler) Reject(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.requestService.Reject(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
