package handler

import (
	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/gin-gonic/gin"
)

// StudentTaskHandler handles manual edits to student task rows
type StudentTaskHandler struct {
	BaseHandler
	studentTaskService *trackingapp.StudentTaskService
}

// NewStudentTaskHandler creates a new StudentTaskHandler
func NewStudentTaskHandler(studentTaskService *trackingapp.StudentTaskService) *StudentTaskHandler {
	return &StudentTaskHandler{
		studentTaskService: studentTaskService,
	}
}

// GetByID handles GET /student-tasks/:id
func (h *StudentTaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student task ID")
		return
	}

	task, err := h.studentTaskService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// List handles GET /student-tasks
func (h *StudentTaskHandler) List(c *gin.Context) {
	var filter trackingapp.StudentTaskListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	tasks, err := h.studentTaskService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"data": tasks})
}

// Update handles PATCH /student-tasks/:id
func (h *StudentTaskHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student task ID")
		return
	}

	var req trackingapp.UpdateStudentTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	task, err := h.studentTaskService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, task)
}

// Delete handles DELETE /student-tasks/:id
func (h *StudentTaskHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student task ID")
		return
	}

	if err := h.studentTaskService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
