package handler

import (
	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/gin-gonic/gin"
)

// TaskTypeHandler handles task type API endpoints
type TaskTypeHandler struct {
	BaseHandler
	taskTypeService *trackingapp.TaskTypeService
}

// NewTaskTypeHandler creates a new TaskTypeHandler
func NewTaskTypeHandler(taskTypeService *trackingapp.TaskTypeService) *TaskTypeHandler {
	return &TaskTypeHandler{
		taskTypeService: taskTypeService,
	}
}

// Create handles POST /task-types
func (h *TaskTypeHandler) Create(c *gin.Context) {
	var req trackingapp.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	taskType, err := h.taskTypeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, taskType)
}

// GetByID handles GET /task-types/:id
func (h *TaskTypeHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid task type ID")
		return
	}

	taskType, err := h.taskTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, taskType)
}

// List handles GET /task-types
func (h *TaskTypeHandler) List(c *gin.Context) {
	var filter trackingapp.TypeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	taskTypes, total, err := h.taskTypeService.List(c.Request.Context(), filter)
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
	h.Paginated(c, taskTypes, total, page, pageSize)
}

// Update handles PUT /task-types/:id
func (h *TaskTypeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid task type ID")
		return
	}

	var req trackingapp.UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	taskType, err := h.taskTypeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, taskType)
}

// Delete handles DELETE /task-types/:id
func (h *TaskTypeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid task type ID")
		return
	}

	if err := h.taskTypeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
