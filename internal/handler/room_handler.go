package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// RoomHandler manages the room inventory.
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler constructs a RoomHandler.
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// Create godoc
// @Summary Create a room
// @Description Adds a room to the inventory, optionally assigning an
// @Description occupant by custom id. Room status follows occupancy and is
// @Description never set directly.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.RoomCreateRequest true "Room payload"
// @Success 201 {object} response.Envelope{data=models.Room}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.RoomCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, room)
}

// Update godoc
// @Summary Update a room
// @Description Edits room details and occupant assignment. Clearing the
// @Description occupant vacates the room.
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param payload body models.RoomUpdateRequest true "Room payload"
// @Success 200 {object} response.Envelope{data=models.Room}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.RoomUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, room, nil)
}

// Unassign godoc
// @Summary Vacate a room
// @Description Clears the room's occupant and marks it available. Vacating
// @Description an already vacant room succeeds without effect.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /rooms/{id}/unassign [post]
func (h *RoomHandler) Unassign(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.roomService.Unassign(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a room
// @Description Removes a room from the inventory. Occupied rooms cannot be
// @Description deleted; vacate them first.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List godoc
// @Summary List all rooms
// @Description Returns the full inventory with occupant details.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.RoomDetail}
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, rooms, nil)
}

// ListAvailable godoc
// @Summary List available rooms
// @Description Returns rooms currently open for assignment. Visible to all
// @Description authenticated users.
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.Room}
// @Failure 401 {object} response.Envelope
// @Router /rooms/available [get]
func (h *RoomHandler) ListAvailable(c *gin.Context) {
	rooms, err := h.roomService.ListAvailable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, rooms, nil)
}
