package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthotel/user-service/internal/domain/entity"
	"github.com/smarthotel/user-service/internal/infrastructure/memory"
	"github.com/smarthotel/user-service/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func seedUser(t *testing.T, repo *memory.UserRepository, username, email string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{
		Username:       username,
		Email:          email,
		HashedPassword: "x",
		Role:           role,
		IsVerified:     true,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func protectedRouter(repo *memory.UserRepository, jwt *helpers.JWTManager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(repo, jwt)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		u, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": u.Email})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("secret", 30*time.Minute)
	r := protectedRouter(repo, jwt)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer").Code)
}

func TestAuthInvalidToken(t *testing.T) {
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("secret", 30*time.Minute)
	r := protectedRouter(repo, jwt)

	w := doGet(r, "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuthExpiredToken(t *testing.T) {
	repo := memory.NewUserRepository()
	u := seedUser(t, repo, "alice01", "a@x.com", entity.RoleCustomer)

	expired := helpers.NewJWTManager("secret", -time.Minute)
	token, _, err := expired.GenerateToken(u)
	require.NoError(t, err)

	jwt := helpers.NewJWTManager("secret", 30*time.Minute)
	r := protectedRouter(repo, jwt)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthDeletedUser(t *testing.T) {
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("secret", 30*time.Minute)
	u := seedUser(t, repo, "alice01", "a@x.com", entity.RoleCustomer)
	token, _, err := jwt.GenerateToken(u)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), u.ID))

	r := protectedRouter(repo, jwt)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestAuthValidToken(t *testing.T) {
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("secret", 30*time.Minute)
	u := seedUser(t, repo, "alice01", "a@x.com", entity.RoleCustomer)
	token, _, err := jwt.GenerateToken(u)
	require.NoError(t, err)

	r := protectedRouter(repo, jwt)
	w := doGet(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@x.com")
}

func TestRequireRoles(t *testing.T) {
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("secret", 30*time.Minute)

	admin := seedUser(t, repo, "root", "admin@x.com", entity.RoleAdmin)
	staff := seedUser(t, repo, "clerk", "staff@x.com", entity.RoleStaff)
	customer := seedUser(t, repo, "alice01", "a@x.com", entity.RoleCustomer)

	tokenFor := func(u *entity.User) string {
		tok, _, err := jwt.GenerateToken(u)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	adminOnly := protectedRouter(repo, jwt, RequireAdmin())
	assert.Equal(t, http.StatusOK, doGet(adminOnly, tokenFor(admin)).Code)
	assert.Equal(t, http.StatusForbidden, doGet(adminOnly, tokenFor(staff)).Code)
	assert.Equal(t, http.StatusForbidden, doGet(adminOnly, tokenFor(customer)).Code)

	staffOrAdmin := protectedRouter(repo, jwt, RequireStaffOrAdmin())
	assert.Equal(t, http.StatusOK, doGet(staffOrAdmin, tokenFor(admin)).Code)
	assert.Equal(t, http.StatusOK, doGet(staffOrAdmin, tokenFor(staff)).Code)
	assert.Equal(t, http.StatusForbidden, doGet(staffOrAdmin, tokenFor(customer)).Code)
}
