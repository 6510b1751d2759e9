package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/middleware"
	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
)

// claimsFromContext extracts the authenticated user's claims placed by the
// JWT middleware. Handlers on protected routes can rely on it being present;
// the error path covers misconfigured route groups.
func claimsFromContext(c *gin.Context) (*models.JWTClaims, error) {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, appErrors.ErrUnauthorized
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}
