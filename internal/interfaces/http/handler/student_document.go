package handler

import (
	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/gin-gonic/gin"
)

// StudentDocumentHandler handles manual edits to student document rows
type StudentDocumentHandler struct {
	BaseHandler
	studentDocumentService *trackingapp.StudentDocumentService
}

// NewStudentDocumentHandler creates a new StudentDocumentHandler
func NewStudentDocumentHandler(studentDocumentService *trackingapp.StudentDocumentService) *StudentDocumentHandler {
	return &StudentDocumentHandler{
		studentDocumentService: studentDocumentService,
	}
}

// GetByID handles GET /student-documents/:id
func (h *StudentDocumentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student document ID")
		return
	}

	doc, err := h.studentDocumentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// List handles GET /student-documents
func (h *StudentDocumentHandler) List(c *gin.Context) {
	var filter trackingapp.StudentDocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	docs, err := h.studentDocumentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"data": docs})
}

// Update handles PATCH /student-documents/:id
func (h *StudentDocumentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student document ID")
		return
	}

	var req trackingapp.UpdateStudentDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	doc, err := h.studentDocumentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, doc)
}

// Delete handles DELETE /student-documents/:id
func (h *StudentDocumentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student document ID")
		return
	}

	if err := h.studentDocumentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
