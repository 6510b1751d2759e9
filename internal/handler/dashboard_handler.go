package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/models"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

type dashboardService interface {
	Admin(ctx context.Context) (*models.AdminDashboard, bool, error)
	Student(ctx context.Context, userID string) (*models.StudentDashboard, error)
}

// DashboardHandler serves the role-specific dashboard summaries.
type DashboardHandler struct {
	dashboardService dashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: svc}
}

// Admin godoc
// @Summary Admin dashboard summary
// @Description Aggregated occupancy, request, maintenance, visitor and fee
// @Description counters. Served from cache when fresh; the meta.cached flag
// @Description reports which.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.AdminDashboard}
// @Failure 403 {object} response.Envelope
// @Router /dashboard/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	summary, cached, err := h.dashboardService.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary, nil, map[string]interface{}{"cached": cached})
}

// Student godoc
// @Summary Student dashboard summary
// @Description The caller's room, pending request flag, open tickets and
// @Description unpaid fee count.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope{data=models.StudentDashboard}
// @Failure 401 {object} response.Envelope
// @Router /dashboard/student [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	claims, err := claimsFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, err := h.dashboardService.Student(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary, nil)
}
