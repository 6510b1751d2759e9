package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/hostelworks/hostel-admin-api/internal/authz"
	"github.com/hostelworks/hostel-admin-api/internal/models"
	appErrors "github.com/hostelworks/hostel-admin-api/pkg/errors"
	"github.com/hostelworks/hostel-admin-api/pkg/response"
)

// RequireOperation gates a route on the authorization policy table. All
// role checks go through the one table so a route and its service agree on
// who may call it.
func RequireOperation(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if err := authz.Require(claims.Role, op); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
