package review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"craftmosul/internal/domain"
	"craftmosul/internal/middleware"
	"craftmosul/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/reviews", h.List)
		public.GET("/reviews/:id", h.Get)
		public.GET("/workers/:id/reviews", h.ListByWorker)
	}

	if protected != nil {
		protected.POST("/reviews", middleware.RequireRoles(domain.RoleClient), h.Create)
		protected.PATCH("/reviews/:id", middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin), h.Update)
		protected.DELETE("/reviews/:id", middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin), h.Delete)
	}
}

// Create writes a review for a completed request.
// @Summary	Review a completed request
// @Description	Only the client who opened the request may review it, once, and only after the assigned worker completed it. The worker's average rating and job count are recomputed on every review write.
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"request_id, rating 1-5, optional comment"
// @Success	201	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{} "a review for this request already exists"
// @Router		/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), p.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
		case errors.Is(err, ErrRequestNotFound):
			response.Error(c, http.StatusNotFound, "REQUEST_NOT_FOUND", "Request not found")
		case errors.Is(err, ErrRequestNotCompleted):
			response.Error(c, http.StatusBadRequest, "REQUEST_NOT_COMPLETED", "Only completed requests can be reviewed")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the request's client can review it")
		case errors.Is(err, ErrConflict):
			response.Error(c, http.StatusConflict, "CONFLICT", "A review for this request already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create review")
		}
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	rv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load review")
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, total, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": items, "total": total})
}

func (h *Handler) ListByWorker(c *gin.Context) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || workerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, total, err := h.svc.ListByWorker(c.Request.Context(), workerID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list reviews")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reviews": items, "total": total})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.Update(c.Request.Context(), id, p, req)
	if err != nil {
		h.writeError(c, err, "Failed to update review")
		return
	}

	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, p); err != nil {
		h.writeError(c, err, "Failed to delete review")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the review's author or an admin can modify it")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}
