package worker

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"craftmosul/internal/domain"
	"craftmosul/internal/middleware"
	"craftmosul/internal/pkg/response"
	"craftmosul/internal/repository"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/workers", h.List)
		public.GET("/workers/:id", h.Get)
	}

	if protected != nil {
		protected.GET("/workers/me", middleware.RequireRoles(domain.RoleWorker), h.GetMine)
		protected.PUT("/workers/:id", middleware.RequireRoles(domain.RoleWorker, domain.RoleAdmin), h.Update)
		protected.PATCH("/workers/:id/availability", middleware.RequireRoles(domain.RoleWorker), h.SetAvailability)
		protected.DELETE("/workers/:id", middleware.RequireRoles(domain.RoleAdmin), h.Delete)
	}
}

// List returns the worker directory, optionally filtered.
// @Summary	List workers
// @Tags		Workers
// @Param		profession_id	query	int		false	"filter by profession"
// @Param		neighborhood_id	query	int		false	"filter by neighborhood"
// @Param		available		query	bool	false	"only available workers"
// @Success	200	{object}	map[string]interface{}
// @Router		/workers [GET]
func (h *Handler) List(c *gin.Context) {
	professionID, _ := strconv.ParseInt(c.Query("profession_id"), 10, 64)
	neighborhoodID, _ := strconv.ParseInt(c.Query("neighborhood_id"), 10, 64)
	available, _ := strconv.ParseBool(c.Query("available"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	filter := repository.WorkerFilter{
		ProfessionID:   professionID,
		NeighborhoodID: neighborhoodID,
		AvailableOnly:  available,
	}

	workers, total, err := h.svc.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list workers")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"workers": workers, "total": total})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	w, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load worker")
		return
	}

	response.Success(c, http.StatusOK, w)
}

func (h *Handler) GetMine(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	w, err := h.svc.GetByUser(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker profile not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load worker profile")
		return
	}

	response.Success(c, http.StatusOK, w)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	var req UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	w, err := h.svc.Update(c.Request.Context(), id, p, req)
	if err != nil {
		h.writeError(c, err, "Failed to update worker")
		return
	}

	response.Success(c, http.StatusOK, w)
}

func (h *Handler) SetAvailability(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	w, err := h.svc.SetAvailability(c.Request.Context(), id, p, *req.IsAvailable)
	if err != nil {
		h.writeError(c, err, "Failed to update availability")
		return
	}

	response.Success(c, http.StatusOK, w)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete worker")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Worker not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only modify your own worker profile")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}
