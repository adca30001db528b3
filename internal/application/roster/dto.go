package roster

import (
	"time"

	"github.com/classtrack/backend/internal/domain/roster"
	"github.com/classtrack/backend/internal/infrastructure/importer"
	"github.com/google/uuid"
)

// CreateStudentRequest creates a student
type CreateStudentRequest struct {
	FirstName string `json:"firstName" binding:"max=100"`
	LastName  string `json:"lastName" binding:"max=100"`
	Class     string `json:"class" binding:"required,min=1,max=50"`
	Notes     string `json:"notes" binding:"max=2000"`
}

// UpdateStudentRequest replaces a student's fields
type UpdateStudentRequest struct {
	FirstName string  `json:"firstName" binding:"max=100"`
	LastName  string  `json:"lastName" binding:"max=100"`
	Class     string  `json:"class" binding:"required,min=1,max=50"`
	Notes     *string `json:"notes" binding:"omitempty,max=2000"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Class     string    `json:"class"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StudentListFilter represents filter options for the student list
type StudentListFilter struct {
	Search   string `form:"search"`
	Class    string `form:"class"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=200"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// ToStudentResponse converts a student to its response shape
func ToStudentResponse(s *roster.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		FullName:  s.FullName(),
		Class:     s.Class,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ImportResult represents the outcome of a roster import
type ImportResult struct {
	TotalRows   int                 `json:"totalRows"`
	Imported    int                 `json:"imported"`
	Skipped     int                 `json:"skipped"`
	ErrorRows   int                 `json:"errorRows"`
	Errors      []importer.RowError `json:"errors,omitempty"`
	TotalErrors int                 `json:"totalErrors,omitempty"`
	IsTruncated bool                `json:"isTruncated,omitempty"`
}
