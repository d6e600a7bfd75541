package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smarthotel/user-service/internal/domain/entity"
	repo "github.com/smarthotel/user-service/internal/domain/repository"
	"github.com/smarthotel/user-service/pkg/helpers"
	"github.com/smarthotel/user-service/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxUserKey   = "currentUser"
	CtxUserIDKey = "userID"
)

// Auth validates the bearer token from the Authorization header and resolves
// its subject against the user store, so a token for a deleted account is
// rejected even while still unexpired.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}

		u, err := users.GetByEmail(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "user not found", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, strconv.FormatInt(u.ID, 10)) // used by the user rate limiter
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser returns the authenticated user set by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok
}
