package profession

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

// Handler serves the profession catalog. Reads are public, writes are
// admin only; duplicate names conflict.
type Handler struct {
	repo *repository.ProfessionRepository
}

func NewHandler(repo *repository.ProfessionRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/professions", h.List)
		public.GET("/professions/:id", h.Get)
	}

	if protected != nil {
		admin := protected.Group("/professions", middleware.RequireRoles(domain.RoleAdmin))
		{
			admin.POST("", h.Create)
			admin.PUT("/:id", h.Update)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

type professionRequest struct {
	Name        string `json:"name" binding:"required"`
	NameAr      string `json:"name_ar"`
	Description string `json:"description"`
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list professions")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid profession ID")
		return
	}

	p, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profession not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load profession")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Create(c *gin.Context) {
	var req professionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p := &domain.Profession{Name: req.Name, NameAr: req.NameAr, Description: req.Description}
	if err := h.repo.Create(c.Request.Context(), p); err != nil {
		if repository.IsUniqueViolation(err) {
			response.Error(c, http.StatusConflict, "NAME_EXISTS", "A profession with this name already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create profession")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid profession ID")
		return
	}

	var req professionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.repo.Update(c.Request.Context(), id, map[string]any{
		"name":        req.Name,
		"name_ar":     req.NameAr,
		"description": req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profession not found")
		case repository.IsUniqueViolation(err):
			response.Error(c, http.StatusConflict, "NAME_EXISTS", "A profession with this name already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to update profession")
		}
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid profession ID")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Profession not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete profession")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
