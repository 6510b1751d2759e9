package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/internal/service"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// FeedbackHandler serves the feedback box.
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit godoc
// @Summary Submit feedback
// @Description Records a feedback entry from the calling student. Entries
// @Description are append-only; there is no edit or delete.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.FeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope{data=models.FeedbackEntry}
// @Failure 400 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	entry, err := h.feedbackService.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, entry)
}

// List godoc
// @Summary List feedback
// @Description Students see their own entries; the admin sees all. Staff
// @Description have no feedback visibility.
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=[]models.FeedbackDetail}
// @Failure 403 {object} response.Envelope
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.feedbackService.List(c.Request.Context(), claims.UserID, claims.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries, nil)
}
