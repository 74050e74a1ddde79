package neighborhood

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"craftmosul/internal/domain"
	"craftmosul/internal/middleware"
	"craftmosul/internal/pkg/response"
	"craftmosul/internal/repository"
)

type Handler struct {
	repo *repository.NeighborhoodRepository
}

func NewHandler(repo *repository.NeighborhoodRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/neighborhoods", h.List)
		public.GET("/neighborhoods/:id", h.Get)
	}

	if protected != nil {
		admin := protected.Group("/neighborhoods", middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

type neighborhoodRequest struct {
	Name   string `json:"name" binding:"required"`
	NameAr string `json:"name_ar"`
	Side   string `json:"side" binding:"omitempty,oneof=left right"`
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list neighborhoods")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid neighborhood ID")
		return
	}

	n, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Neighborhood not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load neighborhood")
		return
	}
	response.Success(c, http.StatusOK, n)
}

func (h *Handler) Create(c *gin.Context) {
	var req neighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	n := &domain.Neighborhood{Name: req.Name, NameAr: req.NameAr, Side: req.Side}
	if err := h.repo.Create(c.Request.Context(), n); err != nil {
		if repository.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, "NAME_EXISTS", "A neighborhood with this name already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create neighborhood")
		return
	}
	response.Success(c, http.StatusCreated, n)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid neighborhood ID")
		return
	}

	var req neighborhoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	n, err := h.repo.Update(c.Request.Context(), id, map[string]any{
		"name":    req.Name,
		"name_ar": req.NameAr,
		"side":    req.Side,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Neighborhood not found")
		case repository.IsUniqueViolation(err):
			response.Error(c, http.StatusConflict, "NAME_EXISTS", "A neighborhood with this name already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to update neighborhood")
		}
		return
	}
	response.Success(c, http.StatusOK, n)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid neighborhood ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Neighborhood not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete neighborhood")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
