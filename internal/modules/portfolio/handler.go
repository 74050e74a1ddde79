package portfolio

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"craftmosul/internal/domain"
	"craftmosul/internal/middleware"
	"craftmosul/internal/pkg/response"
)

type Handler struct {
	svc       *Service
	uploadDir string
	maxSizeMB int64
}

func NewHandler(svc *Service, uploadDir string, maxSizeMB int64) *Handler {
	return &Handler{svc: svc, uploadDir: uploadDir, maxSizeMB: maxSizeMB}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/workers/:id/portfolio", h.ListByWorker)
	}

	if protected != nil {
		items := protected.Group("/portfolio")
		{
			items.POST("", middleware.RequireRoles(domain.RoleWorker), h.Create)
			items.POST("/upload", middleware.RequireRoles(domain.RoleWorker), h.Upload)
			items.PUT("/:id", middleware.RequireRoles(domain.RoleWorker, domain.RoleAdmin), h.Update)
			items.DELETE("/:id", middleware.RequireRoles(domain.RoleWorker, domain.RoleAdmin), h.Delete)
		}
	}
}

func (h *Handler) ListByWorker(c *gin.Context) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || workerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	items, err := h.svc.ListByWorker(c.Request.Context(), workerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list portfolio")
		return
	}

	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	item, err := h.svc.Create(c.Request.Context(), p, req)
	if err != nil {
		h.writeError(c, err, "Failed to create portfolio item")
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// Upload stores a portfolio image on local disk and returns its URL path.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing image file")
		return
	}

	if file.Size > h.maxSizeMB*1024*1024 {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("Image must be at most %d MB", h.maxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_FILE", "Only jpg, jpeg, png and webp images are accepted")
		return
	}

	dir := filepath.Join(h.uploadDir, "portfolio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to store image")
		return
	}

	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to store image")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"image_url": "/uploads/portfolio/" + name})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid portfolio item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, p, req)
	if err != nil {
		h.writeError(c, err, "Failed to update portfolio item")
		return
	}

	response.Success(c, http.StatusOK, item)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid portfolio item ID")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, p); err != nil {
		h.writeError(c, err, "Failed to delete portfolio item")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Portfolio item not found")
	case errors.Is(err, ErrWorkerNotFound):
		response.Error(c, http.StatusNotFound, "WORKER_NOT_FOUND", "Worker profile not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only manage your own portfolio")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}
