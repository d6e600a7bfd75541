package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smarthotel/user-service/internal/container"
	repo "github.com/smarthotel/user-service/internal/domain/repository"
	handlers "github.com/smarthotel/user-service/internal/interface/http"
	"github.com/smarthotel/user-service/internal/interface/middleware"
	"github.com/smarthotel/user-service/pkg/helpers"
)

// UserModule wires the protected endpoints behind the bearer-token gate.
// GET /api/auth/me, GET /api/users [admin], DELETE /api/users/:id [admin],
// GET /api/staff/dashboard [staff or admin]
type UserModule struct {
	Auth  *handlers.AuthHandler
	Users *handlers.UserHandler
	Repo  repo.UserRepository
	JWT   *helpers.JWTManager
}

func NewUserModule(auth *handlers.AuthHandler, users *handlers.UserHandler, r repo.UserRepository, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Auth: auth, Users: users, Repo: r, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Repo, m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		auth.GET("/auth/me", m.Auth.Me)
		auth.GET("/staff/dashboard", middleware.RequireStaffOrAdmin(), m.Users.StaffDashboard)

		admin := auth.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", m.Users.List)
			admin.DELETE("/users/:id", m.Users.Delete)
		}
	}
}
