package catalog

import (
	"net/http"
	"strconv"

	"tutormarket/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/subjects", h.ListSubjects)
	rg.GET("/subjects/:id", h.GetSubject)
	rg.GET("/tutors", h.ListTutors)
	rg.GET("/tutors/:id", h.GetTutor)
}

// RegisterAdminRoutes expects an admin-guarded group.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.POST("/subjects", h.CreateSubject)
	rg.PUT("/subjects/:id", h.UpdateSubject)
	rg.DELETE("/subjects/:id", h.DeleteSubject)
}

func (h *Handler) ListSubjects(c *gin.Context) {
	var q ListSubjectsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	list, err := h.service.ListSubjects(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subjects fetched", list)
}

func (h *Handler) GetSubject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	subject, err := h.service.GetSubject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subject fetched", gin.H{"subject": subject})
}

func (h *Handler) CreateSubject(c *gin.Context) {
	var req CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	subject, err := h.service.CreateSubject(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Subject created", gin.H{"subject": subject})
}

func (h *Handler) UpdateSubject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	subject, err := h.service.UpdateSubject(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subject updated", gin.H{"subject": subject})
}

func (h *Handler) DeleteSubject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteSubject(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subject deleted", nil)
}

func (h *Handler) ListTutors(c *gin.Context) {
	var q ListTutorsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	list, err := h.service.ListTutors(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tutors fetched", list)
}

func (h *Handler) GetTutor(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	details, err := h.service.GetTutor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tutor fetched", details)
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrSubjectExists:
		response.Error(c, http.StatusConflict, "SUBJECT_EXISTS", "A subject with this name already exists")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
	}
}
