package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accountsvc/internal/database"
	"accountsvc/internal/middleware"
	"accountsvc/internal/modules/auth"
	"accountsvc/internal/modules/user"
	jwtsvc "accountsvc/internal/pkg/jwt"
	"accountsvc/internal/repository"
)

type TestSuite struct {
	router *gin.Engine
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *TestSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, database.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewActiveTokenRepository(db)

	accessSigner := jwtsvc.New("test_access_secret_32_chars_min!", 15*time.Minute)
	refreshSigner := jwtsvc.New("test_refresh_secret_32_chars_mn!", 168*time.Hour)

	authService := auth.NewService(userRepo, tokenRepo, accessSigner, refreshSigner)
	authHandler := auth.NewHandler(authService, false)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, false)

	r := gin.New()
	root := r.Group("/")
	authHandler.RegisterRoutes(root)
	userHandler.RegisterPublicRoutes(root)

	protected := root.Group("/")
	protected.Use(middleware.JWTAuth(accessSigner))
	userHandler.RegisterProtectedRoutes(protected)

	return &TestSuite{router: r}
}

func (s *TestSuite) do(t *testing.T, method, path string, body any, bearer string) (*httptest.ResponseRecorder, TestResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "response is not valid JSON: %s", w.Body.String())
	return w, resp
}

func (s *TestSuite) signup(t *testing.T, email, password string) map[string]interface{} {
	t.Helper()
	w, resp := s.do(t, "POST", "/user", gin.H{
		"email":    email,
		"password": password,
		"name":     "Test User",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return resp.Data["user"].(map[string]interface{})
}

func (s *TestSuite) login(t *testing.T, email, password string) (access, refresh string) {
	t.Helper()
	w, resp := s.do(t, "POST", "/auth/login", gin.H{"email": email, "password": password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return resp.Data["access_token"].(string), resp.Data["refresh_token"].(string)
}

func TestSignupFlow(t *testing.T) {
	s := setupTestSuite(t)

	created := s.signup(t, "alice@example.com", "secret123")
	assert.Equal(t, "alice@example.com", created["email"])
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "password_hash")

	// duplicate email
	w, resp := s.do(t, "POST", "/user", gin.H{"email": "alice@example.com", "password": "other456"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)
}

func TestLoginLogoutFlow(t *testing.T) {
	s := setupTestSuite(t)
	s.signup(t, "bob@example.com", "secret123")

	// wrong password
	w, resp := s.do(t, "POST", "/auth/login", gin.H{"email": "bob@example.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)

	// unknown email
	w, _ = s.do(t, "POST", "/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, refresh := s.login(t, "bob@example.com", "secret123")

	// logout revokes the refresh token
	w, _ = s.do(t, "POST", "/auth/logout", gin.H{"token": refresh}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// second logout with the same token fails
	w, resp = s.do(t, "POST", "/auth/logout", gin.H{"token": refresh}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
}

func TestRefreshFlow(t *testing.T) {
	s := setupTestSuite(t)
	s.signup(t, "carol@example.com", "secret123")
	access, refresh := s.login(t, "carol@example.com", "secret123")

	w, resp := s.do(t, "POST", "/auth/refresh-token", gin.H{
		"email":         "carol@example.com",
		"refresh_token": refresh,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, resp.Data["access_token"])
	// the same refresh token comes back, no rotation
	assert.Equal(t, refresh, resp.Data["refresh_token"])
	_ = access

	// revoked token no longer refreshes
	w, _ = s.do(t, "POST", "/auth/logout", gin.H{"token": refresh}, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, "POST", "/auth/refresh-token", gin.H{
		"email":         "carol@example.com",
		"refresh_token": refresh,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REFRESH_TOKEN", resp.Error.Code)
}

func TestUserDirectoryFlow(t *testing.T) {
	s := setupTestSuite(t)
	created := s.signup(t, "dave@example.com", "secret123")
	access, _ := s.login(t, "dave@example.com", "secret123")
	id := int64(created["id"].(float64))

	// list requires a token
	w, _ := s.do(t, "GET", "/user", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := s.do(t, "GET", "/user", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	users := resp.Data["users"].([]interface{})
	require.Len(t, users, 1)
	assert.NotContains(t, users[0].(map[string]interface{}), "password")

	// partial update touches only the supplied field
	w, resp = s.do(t, "PATCH", fmt.Sprintf("/user/%d", id), gin.H{"email": "new@x.com"}, access)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "new@x.com", updated["email"])
	assert.Equal(t, "Test User", updated["name"])

	// email already held by another account
	s.signup(t, "taken@example.com", "secret123")
	w, resp = s.do(t, "PATCH", fmt.Sprintf("/user/%d", id), gin.H{"email": "taken@example.com"}, access)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_EXISTS", resp.Error.Code)

	// missing user
	w, resp = s.do(t, "PATCH", "/user/99999", gin.H{"name": "Ghost"}, access)
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "USER_NOT_FOUND", resp.Error.Code)

	// delete, then delete again
	w, _ = s.do(t, "DELETE", fmt.Sprintf("/user/%d", id), nil, access)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, "GET", "/user", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	remaining := resp.Data["users"].([]interface{})
	require.Len(t, remaining, 1)
	assert.Equal(t, "taken@example.com", remaining[0].(map[string]interface{})["email"])

	w, _ = s.do(t, "DELETE", fmt.Sprintf("/user/%d", id), nil, access)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
