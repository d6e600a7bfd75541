package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarthotel/user-service/internal/application"
	"github.com/smarthotel/user-service/internal/domain/entity"
	"github.com/smarthotel/user-service/internal/infrastructure/memory"
	"github.com/smarthotel/user-service/internal/interface/middleware"
	"github.com/smarthotel/user-service/pkg/helpers"
	"github.com/smarthotel/user-service/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

type testAPI struct {
	router *gin.Engine
	repo   *memory.UserRepository
	jwt    *helpers.JWTManager
}

// newTestAPI wires the handlers onto the real route layout, minus the rate
// limiters, against an in-memory store.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	repo := memory.NewUserRepository()
	jwt := helpers.NewJWTManager("test-secret", 30*time.Minute)
	svc := application.NewService(repo, jwt, nil, nil, 24*time.Hour)

	authH := NewAuthHandler(svc, nil)
	userH := NewUserHandler(svc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.GET("/auth/verify", authH.Verify)
	api.POST("/auth/resend-verification", authH.ResendVerification)
	api.POST("/auth/login", authH.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(repo, jwt))
	protected.GET("/auth/me", authH.Me)
	protected.GET("/staff/dashboard", middleware.RequireStaffOrAdmin(), userH.StaffDashboard)

	admin := protected.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/users", userH.List)
	admin.DELETE("/users/:id", userH.Delete)

	return &testAPI{router: r, repo: repo, jwt: jwt}
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   map[string]any  `json:"error"`
}

// dataMap decodes the data field for endpoints returning an object.
func (e envelope) dataMap(t *testing.T) map[string]any {
	t.Helper()
	if len(e.Data) == 0 {
		return nil
	}
	var m map[string]any
	require.NoError(t, json.Unmarshal(e.Data, &m))
	return m
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func registerBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"username": "alice01",
		"email":    "a@x.com",
		"password": "Passw0rd",
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func (a *testAPI) verificationToken(t *testing.T, email string) string {
	t.Helper()
	u, err := a.repo.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u.VerificationToken)
	return *u.VerificationToken
}

func (a *testAPI) tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, _, err := a.jwt.GenerateToken(u)
	require.NoError(t, err)
	return tok
}

func (a *testAPI) seedAdmin(t *testing.T) *entity.User {
	t.Helper()
	u := &entity.User{Username: "root", Email: "root@x.com", HashedPassword: "x", Role: entity.RoleAdmin, IsVerified: true}
	require.NoError(t, a.repo.Create(context.Background(), u))
	return u
}

func TestRegisterEndpoint(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	data := env.dataMap(t)
	assert.Equal(t, "alice01", data["username"])
	assert.Equal(t, "customer", data["role"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "hashed_password")
}

func TestRegisterValidation(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"short username", registerBody(map[string]any{"username": "ab"})},
		{"bad username chars", registerBody(map[string]any{"username": "bad name!"})},
		{"bad email", registerBody(map[string]any{"email": "not-an-email"})},
		{"short password", registerBody(map[string]any{"password": "Ab1"})},
		{"no uppercase", registerBody(map[string]any{"password": "passw0rd"})},
		{"no digit", registerBody(map[string]any{"password": "Password"})},
		{"unknown role", registerBody(map[string]any{"role": "superuser"})},
		{"missing fields", map[string]any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := api.do(t, http.MethodPost, "/api/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "invalid payload", env.Message)
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(map[string]any{"username": "other01"}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email", env.Error["field"])

	w, env = api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(map[string]any{"email": "other@x.com"}))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username", env.Error["field"])
}

func TestVerifyEndpoint(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	token := api.verificationToken(t, "a@x.com")

	w, _ = api.do(t, http.MethodGet, "/api/auth/verify", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodGet, "/api/auth/verify?token=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := api.do(t, http.MethodGet, "/api/auth/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := env.dataMap(t)
	assert.Equal(t, true, data["verified"])
	assert.Equal(t, "a@x.com", data["email"])

	// tokens are single use
	w, _ = api.do(t, http.MethodGet, "/api/auth/verify?token="+token, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResendEndpoint(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	old := api.verificationToken(t, "a@x.com")

	w, _ = api.do(t, http.MethodPost, "/api/auth/resend-verification", "", map[string]any{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, old, api.verificationToken(t, "a@x.com"))

	w, _ = api.do(t, http.MethodPost, "/api/auth/resend-verification", "", map[string]any{"email": "nobody@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginFlow(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)

	login := map[string]any{"email": "a@x.com", "password": "Passw0rd"}

	// unverified accounts cannot log in
	w, env := api.do(t, http.MethodPost, "/api/auth/login", "", login)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "email not verified", env.Message)

	token := api.verificationToken(t, "a@x.com")
	w, _ = api.do(t, http.MethodGet, "/api/auth/verify?token="+token, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = api.do(t, http.MethodPost, "/api/auth/login", "", login)
	require.Equal(t, http.StatusOK, w.Code)
	data := env.dataMap(t)
	access, _ := data["access_token"].(string)
	require.NotEmpty(t, access)
	assert.Equal(t, "bearer", data["token_type"])

	// wrong password and unknown email look the same
	w, env = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "a@x.com", "password": "WrongPwd1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	wrongMsg := env.Message
	w, env = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nobody@x.com", "password": "Passw0rd"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrongMsg, env.Message)

	// the issued token works on the profile endpoint
	w, env = api.do(t, http.MethodGet, "/api/auth/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := env.dataMap(t)
	assert.Equal(t, "alice01", profile["username"])
	assert.Equal(t, true, profile["is_verified"])
}

func TestMeRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	w, _ := api.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	api := newTestAPI(t)
	admin := api.seedAdmin(t)
	adminToken := api.tokenFor(t, admin)

	w, _ := api.do(t, http.MethodPost, "/api/auth/register", "", registerBody(nil))
	require.Equal(t, http.StatusCreated, w.Code)
	alice, err := api.repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	// customers are shut out of the admin surface
	aliceToken := api.tokenFor(t, alice)
	w, _ = api.do(t, http.MethodGet, "/api/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := api.do(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = api.do(t, http.MethodDelete, "/api/users/not-a-number", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", admin.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admins cannot delete their own account", env.Message)

	w, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaffDashboard(t *testing.T) {
	api := newTestAPI(t)
	staff := &entity.User{Username: "clerk", Email: "staff@x.com", HashedPassword: "x", Role: entity.RoleStaff, IsVerified: true}
	require.NoError(t, api.repo.Create(context.Background(), staff))

	w, env := api.do(t, http.MethodGet, "/api/staff/dashboard", api.tokenFor(t, staff), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "clerk", env.dataMap(t)["username"])

	// staff cannot reach admin-only routes
	w, _ = api.do(t, http.MethodGet, "/api/users", api.tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
