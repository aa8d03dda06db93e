package user

import (
	"errors"
	"net/http"
	"strconv"

	"accountsvc/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for the user directory
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

// RegisterPublicRoutes exposes signup; everything else sits behind the
// access-token middleware.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/user", h.Create)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/user", h.List)
	protected.PATCH("/user/:id", h.Update)
	protected.DELETE("/user/:id", h.Remove)
}

// Create registers a new user account.
func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.ServerError(c, "CREATE_FAILED", "Failed to create user", err, h.debugErrors)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": u})
}

// List returns all users, newest first.
func (h *Handler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ServerError(c, "LIST_FAILED", "Failed to list users", err, h.debugErrors)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// Update applies a partial update to one user.
func (h *Handler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, ErrEmailAlreadyExists):
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
		default:
			response.ServerError(c, "UPDATE_FAILED", "Failed to update user", err, h.debugErrors)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// Remove deletes one user.
func (h *Handler) Remove(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			return
		}
		response.ServerError(c, "DELETE_FAILED", "Failed to delete user", err, h.debugErrors)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
