package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/smarthotel/user-service/internal/application"
	"github.com/smarthotel/user-service/internal/domain"
	"github.com/smarthotel/user-service/internal/interface/middleware"
	"github.com/smarthotel/user-service/pkg/response"
)

// UserHandler serves the role-gated administrative endpoints.
type UserHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// List GET /api/users (admin only)
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		p := userPayload(u)
		p["is_verified"] = u.IsVerified
		p["created_at"] = u.CreatedAt
		out = append(out, p)
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{"count": len(out)})
}

// Delete DELETE /api/users/:id (admin only, not on the caller's own account)
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.Logger, domain.ErrMissingToken)
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, h.Logger, domain.NewValidationError("invalid user id"))
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), actor.ID, id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

// StaffDashboard GET /api/staff/dashboard (staff or admin)
func (h *UserHandler) StaffDashboard(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, h.Logger, domain.ErrMissingToken)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"message":  "staff dashboard",
		"username": u.Username,
		"role":     u.Role,
	}, "dashboard", nil)
}
