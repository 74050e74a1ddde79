package request

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

// RegisterRoutes wires the request endpoints. Reads are public; mutations
// require authentication plus the role gates below.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.GET("/requests", h.List)
		public.GET("/requests/:id", h.Get)
		public.GET("/requests/client/:clientId", h.ListByClient)
		public.GET("/requests/worker/:workerId", h.ListByWorker)
	}

	if protected != nil {
		protected.POST("/requests", h.Create)
		protected.PATCH("/requests/:id", h.Update)
		protected.PATCH("/requests/:id/status", h.UpdateStatus)
		protected.DELETE("/requests/:id",
			middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin), h.Delete)
	}
}

// Create opens a service request addressed to a worker.
// @Summary	Create a service request
// @Tags		Requests
// @Security	BearerAuth
// @Param		request	body	CreateRequestRequest	true	"worker_id and problem_description"
// @Success	201	{object}	map[string]interface{}
// @Router		/requests [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	r, err := h.svc.Create(c.Request.Context(), p.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
		case errors.Is(err, ErrWorkerNotFound):
			response.Error(c, http.StatusNotFound, "WORKER_NOT_FOUND", "Worker not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create request")
		}
		return
	}

	response.Success(c, http.StatusCreated, r)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load request")
		return
	}

	response.Success(c, http.StatusOK, r)
}

func (h *Handler) List(c *gin.Context) {
	limit, offset := pagination(c)

	items, total, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": items, "total": total})
}

func (h *Handler) ListByClient(c *gin.Context) {
	clientID, ok := pathID(c, "clientId")
	if !ok {
		return
	}
	limit, offset := pagination(c)

	items, total, err := h.svc.ListByClient(c.Request.Context(), clientID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": items, "total": total})
}

func (h *Handler) ListByWorker(c *gin.Context) {
	workerID, ok := pathID(c, "workerId")
	if !ok {
		return
	}
	limit, offset := pagination(c)

	items, total, err := h.svc.ListByWorker(c.Request.Context(), workerID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": items, "total": total})
}

// Update edits the problem description. Allowed for the request's client or
// the assigned worker.
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	r, err := h.svc.UpdateDescription(c.Request.Context(), id, p, req.ProblemDescription)
	if err != nil {
		h.writeError(c, err, "Failed to update request")
		return
	}

	response.Success(c, http.StatusOK, r)
}

// UpdateStatus moves a request through its lifecycle.
// @Summary	Update request status
// @Description	Clients may cancel their own requests; the assigned worker may accept, reject or complete; admins bypass ownership checks. Terminal states never transition.
// @Tags		Requests
// @Security	BearerAuth
// @Param		id		path	int					true	"Request ID"
// @Param		request	body	UpdateStatusRequest	true	"target status, rejected_reason required when rejecting"
// @Success	200	{object}	map[string]interface{}
// @Failure	400	{object}	map[string]interface{} "illegal transition, message names current status and allowed targets"
// @Failure	403	{object}	map[string]interface{}
// @Router		/requests/:id/status [PATCH]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	r, err := h.svc.UpdateStatus(c.Request.Context(), id, p, domain.RequestStatus(req.Status), req.RejectedReason)
	if err != nil {
		h.writeError(c, err, "Failed to update request status")
		return
	}

	response.Success(c, http.StatusOK, r)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var transitionErr *TransitionError
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Request not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You are not allowed to perform this action on this request")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case errors.As(err, &transitionErr):
		response.Error(c, http.StatusBadRequest, "ILLEGAL_TRANSITION", transitionErr.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", fallback)
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.Query("limit"))
	offset, _ = strconv.Atoi(c.Query("offset"))
	return limit, offset
}
