package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smarthotel/user-service/internal/container"
	handlers "github.com/smarthotel/user-service/internal/interface/http"
	"github.com/smarthotel/user-service/internal/interface/middleware"
)

// AuthModule wires the public authentication endpoints.
// POST /api/auth/register, GET /api/auth/verify, POST /api/auth/resend-verification,
// POST /api/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	resendLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.GET("/auth/verify", verifyLimiter, m.Handler.Verify)
	rg.POST("/auth/resend-verification", resendLimiter, m.Handler.ResendVerification)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
