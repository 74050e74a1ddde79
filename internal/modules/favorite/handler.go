package favorite

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	favorites := protected.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("", middleware.RequireRoles(domain.RoleClient), h.Add)
		favorites.DELETE("/:id", middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin), h.Remove)
		favorites.DELETE("/client/:clientId/worker/:workerId",
			middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin), h.RemoveByClientAndWorker)
	}
}

type addFavoriteRequest struct {
	WorkerID int64 `json:"worker_id" binding:"required"`
}

// Add bookmarks a worker for the current client.
// @Summary	Add a worker to favorites
// @Description	Idempotent: adding the same worker twice returns the existing favorite instead of erroring.
// @Tags		Favorites
// @Security	BearerAuth
// @Param		request	body	addFavoriteRequest	true	"worker_id"
// @Success	201	{object}	map[string]interface{}
// @Router		/favorites [POST]
func (h *Handler) Add(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	f, err := h.svc.Add(c.Request.Context(), p.UserID, req.WorkerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
		case errors.Is(err, ErrWorkerNotFound):
			response.Error(c, http.StatusNotFound, "WORKER_NOT_FOUND", "Worker not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to add favorite")
		}
		return
	}

	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) List(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, total, err := h.svc.ListByClient(c.Request.Context(), p.UserID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list favorites")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favorites": items, "total": total})
}

func (h *Handler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid favorite ID")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), id, p); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) RemoveByClientAndWorker(c *gin.Context) {
	clientID, err := strconv.ParseInt(c.Param("clientId"), 10, 64)
	if err != nil || clientID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID")
		return
	}
	workerID, err := strconv.ParseInt(c.Param("workerId"), 10, 64)
	if err != nil || workerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid worker ID")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	if err := h.svc.RemoveByClientAndWorker(c.Request.Context(), clientID, workerID, p); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Favorite not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only remove your own favorites")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to remove favorite")
	}
}
