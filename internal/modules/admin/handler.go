package admin

import (
	"net/http"
	"strconv"

	"tutormarket/internal/middleware"
	"tutormarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.ListUsers)
	rg.POST("/users", h.CreateUser)
	rg.GET("/users/:id", h.GetUser)
	rg.PUT("/users/:id", h.UpdateUser)
	rg.PUT("/users/:id/status", h.UpdateUserStatus)
	rg.GET("/stats", h.GetStats)
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) ListUsers(c *gin.Context) {
	var q ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	list, err := h.service.ListUsers(c.Request.Context(), middleware.ActorFrom(c), q)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}

	response.Success(c, http.StatusOK, "Users fetched", list)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		respondError(c, err, "Failed to fetch user")
		return
	}

	response.Success(c, http.StatusOK, "User fetched", gin.H{"user": u})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.CreateUser(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}

	response.Success(c, http.StatusCreated, "User created", gin.H{"user": u})
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}

	response.Success(c, http.StatusOK, "User updated", gin.H{"user": u})
}

func (h *Handler) UpdateUserStatus(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.UpdateUserStatus(c.Request.Context(), middleware.ActorFrom(c), id, req); err != nil {
		respondError(c, err, "Failed to update user status")
		return
	}

	response.Success(c, http.StatusOK, "User status updated", nil)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		respondError(c, err, "Failed to fetch stats")
		return
	}

	response.Success(c, http.StatusOK, "Stats fetched", stats)
}

func respondError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	case ErrEmailExists:
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
