package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smarthotel/user-service/internal/domain/entity"
	"github.com/smarthotel/user-service/pkg/response"
)

// RequireRoles rejects authenticated users whose role is not in the allowed
// set. Must run after Auth.
func RequireRoles(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "missing token", nil)
			c.Abort()
			return
		}
		for _, r := range allowed {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.Error[any](c, http.StatusForbidden, "insufficient role", nil)
		c.Abort()
	}
}

// RequireAdmin gates admin-only operations.
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(entity.RoleAdmin)
}

// RequireStaffOrAdmin gates operations shared by staff and admins.
func RequireStaffOrAdmin() gin.HandlerFunc {
	return RequireRoles(entity.RoleAdmin, entity.RoleStaff)
}
