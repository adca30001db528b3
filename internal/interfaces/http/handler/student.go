package handler

import (
	"errors"

	rosterapp "github.com/classtrack/backend/internal/application/roster"
	"github.com/classtrack/backend/internal/infrastructure/importer"
	"github.com/gin-gonic/gin"
)

// StudentHandler handles student roster API endpoints
type StudentHandler struct {
	BaseHandler
	studentService *rosterapp.StudentService
	importService  *rosterapp.ImportService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *rosterapp.StudentService, importService *rosterapp.ImportService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		importService:  importService,
	}
}

// Create handles POST /students
func (h *StudentHandler) Create(c *gin.Context) {
	var req rosterapp.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, student)
}

// GetByID handles GET /students/:id
func (h *StudentHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, student)
}

// List handles GET /students
func (h *StudentHandler) List(c *gin.Context) {
	var filter rosterapp.StudentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	students, total, err := h.studentService.List(c.Request.Context(), filter)
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
		pageSize = 50
	}
	h.Paginated(c, students, total, page, pageSize)
}

// ListClasses handles GET /students/classes
func (h *StudentHandler) ListClasses(c *gin.Context) {
	classes, err := h.studentService.ListClasses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"classes": classes})
}

// Update handles PUT /students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	var req rosterapp.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	student, err := h.studentService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, student)
}

// Delete handles DELETE /students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid student ID")
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Import handles POST /students/import with a multipart CSV upload
func (h *StudentHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportRoster(c.Request.Context(), file)
	if err != nil {
		// File-level parse failures are the caller's problem
		switch {
		case errors.Is(err, importer.ErrEmptyFile),
			errors.Is(err, importer.ErrInvalidEncoding),
			errors.Is(err, importer.ErrMissingHeader),
			errors.Is(err, importer.ErrNoDataRows):
			h.BadRequest(c, err.Error())
		default:
			h.HandleError(c, err)
		}
		return
	}

	h.Success(c, result)
}
