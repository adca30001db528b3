package handler

import (
	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/gin-gonic/gin"
)

// DocumentTypeHandler handles document type API endpoints
type DocumentTypeHandler struct {
	BaseHandler
	documentTypeService *trackingapp.DocumentTypeService
}

// NewDocumentTypeHandler creates a new DocumentTypeHandler
func NewDocumentTypeHandler(documentTypeService *trackingapp.DocumentTypeService) *DocumentTypeHandler {
	return &DocumentTypeHandler{
		documentTypeService: documentTypeService,
	}
}

// Create handles POST /document-types
func (h *DocumentTypeHandler) Create(c *gin.Context) {
	var req trackingapp.CreateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	documentType, err := h.documentTypeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, documentType)
}

// GetByID handles GET /document-types/:id
func (h *DocumentTypeHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document type ID")
		return
	}

	documentType, err := h.documentTypeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, documentType)
}

// List handles GET /document-types
func (h *DocumentTypeHandler) List(c *gin.Context) {
	var filter trackingapp.TypeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	documentTypes, total, err := h.documentTypeService.List(c.Request.Context(), filter)
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
	h.Paginated(c, documentTypes, total, page, pageSize)
}

// Update handles PUT /document-types/:id
func (h *DocumentTypeHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document type ID")
		return
	}

	var req trackingapp.UpdateTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	documentType, err := h.documentTypeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, documentType)
}

// Delete handles DELETE /document-types/:id
func (h *DocumentTypeHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document type ID")
		return
	}

	if err := h.documentTypeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
