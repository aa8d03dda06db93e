package auth

import (
	"errors"
	"net/http"

	"accountsvc/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for session authentication
type Handler struct {
	service     *Service
	debugErrors bool
}

func NewHandler(service *Service, debugErrors bool) *Handler {
	return &Handler{
		service:     service,
		debugErrors: debugErrors,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/refresh-token", h.Refresh)
	}
}

// Login issues an access/refresh token pair for valid credentials.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.ServerError(c, "LOGIN_FAILED", "Failed to login", err, h.debugErrors)
		return
	}

	response.Success(c, http.StatusOK, pair)
}

// Logout revokes the supplied refresh token.
func (h *Handler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.Logout(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(c, http.StatusUnauthorized, "SESSION_NOT_FOUND", "Session not found")
			return
		}
		response.ServerError(c, "LOGOUT_FAILED", "Failed to logout", err, h.debugErrors)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Refresh mints a new access token for a known refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Refresh token is unknown or revoked")
			return
		}
		response.ServerError(c, "REFRESH_FAILED", "Failed to refresh token", err, h.debugErrors)
		return
	}

	response.Success(c, http.StatusOK, pair)
}
