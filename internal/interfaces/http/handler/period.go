package handler

import (
	"strings"

	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/gin-gonic/gin"
)

// PeriodHandler handles period API endpoints, including the
// reconciliation endpoints (activate, summary, progress)
type PeriodHandler struct {
	BaseHandler
	periodService     *trackingapp.PeriodService
	activationService *trackingapp.ActivationService
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periodService *trackingapp.PeriodService, activationService *trackingapp.ActivationService) *PeriodHandler {
	return &PeriodHandler{
		periodService:     periodService,
		activationService: activationService,
	}
}

// Create handles POST /periodes
func (h *PeriodHandler) Create(c *gin.Context) {
	var req trackingapp.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	period, err := h.periodService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, period)
}

// GetByID handles GET /periodes/:id
func (h *PeriodHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	period, err := h.periodService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// List handles GET /periodes
func (h *PeriodHandler) List(c *gin.Context) {
	var filter trackingapp.PeriodListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	periods, total, err := h.periodService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.Paginated(c, periods, total, page, pageSize)
}

// Update handles PUT /periodes/:id
func (h *PeriodHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	var req trackingapp.UpdatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	period, err := h.periodService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Delete handles DELETE /periodes/:id
func (h *PeriodHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	if err := h.periodService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ReplaceTaskTypes handles PUT /periodes/:id/task-types
func (h *PeriodHandler) ReplaceTaskTypes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	var req trackingapp.ReplaceAssociationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	period, err := h.periodService.ReplaceTaskTypes(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// ReplaceDocumentTypes handles PUT /periodes/:id/document-types
func (h *PeriodHandler) ReplaceDocumentTypes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	var req trackingapp.ReplaceAssociationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	period, err := h.periodService.ReplaceDocumentTypes(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, period)
}

// Activate handles POST /periodes/:id/activate
func (h *PeriodHandler) Activate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	var req trackingapp.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.activationService.Activate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Summary handles GET /periodes/:id/summary?classes=6A,6B
func (h *PeriodHandler) Summary(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	summary, err := h.activationService.Summary(c.Request.Context(), id, splitClassesParam(c.Query("classes")))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Progress handles GET /periodes/:id/progress?classes=6A,6B
func (h *PeriodHandler) Progress(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid period ID")
		return
	}

	progress, err := h.activationService.Progress(c.Request.Context(), id, splitClassesParam(c.Query("classes")))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, progress)
}

// splitClassesParam splits a comma-separated classes query parameter
func splitClassesParam(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
