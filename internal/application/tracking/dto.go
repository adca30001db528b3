package tracking

import (
	"time"

	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// =============================================================================
// TaskType / DocumentType DTOs
// =============================================================================

// CreateTypeRequest creates a task or document type
type CreateTypeRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=200"`
	Description    string     `json:"description" binding:"max=2000"`
	DefaultDueDate *time.Time `json:"defaultDueDate"`
}

// UpdateTypeRequest replaces a task or document type's fields
type UpdateTypeRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=200"`
	Description    string     `json:"description" binding:"max=2000"`
	DefaultDueDate *time.Time `json:"defaultDueDate"`
}

// TypeResponse represents a task or document type in API responses
type TypeResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	DefaultDueDate *time.Time `json:"defaultDueDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TypeListFilter represents filter options for type lists
type TypeListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// ToTaskTypeResponse converts a task type to its response shape
func ToTaskTypeResponse(t *tracking.TaskType) TypeResponse {
	return TypeResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		DefaultDueDate: t.DefaultDueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToDocumentTypeResponse converts a document type to its response shape
func ToDocumentTypeResponse(t *tracking.DocumentType) TypeResponse {
	return TypeResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		DefaultDueDate: t.DefaultDueDate,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// =============================================================================
// Period DTOs
// =============================================================================

// CreatePeriodRequest creates a period
type CreatePeriodRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	StartsOn *time.Time `json:"startsOn"`
	EndsOn   *time.Time `json:"endsOn"`
}

// UpdatePeriodRequest replaces a period's fields
type UpdatePeriodRequest struct {
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	StartsOn *time.Time `json:"startsOn"`
	EndsOn   *time.Time `json:"endsOn"`
}

// AssociationInput is one entry of a period's association list
type AssociationInput struct {
	TypeID  uuid.UUID  `json:"typeId" binding:"required"`
	DueDate *time.Time `json:"dueDate"`
}

// ReplaceAssociationsRequest replaces one of a period's association lists
type ReplaceAssociationsRequest struct {
	Associations []AssociationInput `json:"associations"`
}

// AssociationResponse is one association in period responses
type AssociationResponse struct {
	TypeID         uuid.UUID  `json:"typeId"`
	Name           string     `json:"name"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	DefaultDueDate *time.Time `json:"defaultDueDate,omitempty"`
	Position       int        `json:"position"`
}

// PeriodResponse represents a period in API responses
type PeriodResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	StartsOn      *time.Time            `json:"startsOn,omitempty"`
	EndsOn        *time.Time            `json:"endsOn,omitempty"`
	TaskTypes     []AssociationResponse `json:"taskTypes"`
	DocumentTypes []AssociationResponse `json:"documentTypes"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// PeriodListFilter represents filter options for the period list
type PeriodListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"orderBy"`
	OrderDir string `form:"orderDir" binding:"omitempty,oneof=asc desc"`
}

// ToPeriodResponse converts a period with its associations
func ToPeriodResponse(p *tracking.Period) PeriodResponse {
	resp := PeriodResponse{
		ID:            p.ID,
		Name:          p.Name,
		StartsOn:      p.StartsOn,
		EndsOn:        p.EndsOn,
		TaskTypes:     make([]AssociationResponse, len(p.TaskTypes)),
		DocumentTypes: make([]AssociationResponse, len(p.DocumentTypes)),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for i := range p.TaskTypes {
		a := &p.TaskTypes[i]
		resp.TaskTypes[i] = AssociationResponse{
			TypeID:         a.TaskTypeID,
			Name:           a.TaskType.Name,
			DueDate:        a.DueDate,
			DefaultDueDate: a.TaskType.DefaultDueDate,
			Position:       a.Position,
		}
	}
	for i := range p.DocumentTypes {
		a := &p.DocumentTypes[i]
		resp.DocumentTypes[i] = AssociationResponse{
			TypeID:         a.DocumentTypeID,
			Name:           a.DocumentType.Name,
			DueDate:        a.DueDate,
			DefaultDueDate: a.DocumentType.DefaultDueDate,
			Position:       a.Position,
		}
	}
	return resp
}

// =============================================================================
// Activation DTOs
// =============================================================================

// ActivateOptions carries the optional activation flags. Pointers keep
// absent fields distinguishable from explicit false, since onlyMissing
// defaults to true.
type ActivateOptions struct {
	DryRun      *bool `json:"dryRun"`
	OnlyMissing *bool `json:"onlyMissing"`
	Reset       *bool `json:"reset"`
}

// ActivateRequest is the body of the period activation endpoint
type ActivateRequest struct {
	Classes []string         `json:"classes" binding:"required,min=1"`
	Options *ActivateOptions `json:"options"`
}

// ToDomainOptions resolves the request flags against the defaults
func (r *ActivateRequest) ToDomainOptions() tracking.Options {
	opts := tracking.DefaultOptions()
	if r.Options == nil {
		return opts
	}
	if r.Options.DryRun != nil {
		opts.DryRun = *r.Options.DryRun
	}
	if r.Options.OnlyMissing != nil {
		opts.OnlyMissing = *r.Options.OnlyMissing
	}
	if r.Options.Reset != nil {
		opts.Reset = *r.Options.Reset
	}
	return opts
}

// ActivationResult is the aggregated outcome of an activation run
type ActivationResult struct {
	DryRun       bool `json:"dryRun,omitempty"`
	Students     int  `json:"students"`
	CreatedTasks int  `json:"createdTasks"`
	UpdatedTasks int  `json:"updatedTasks"`
	CreatedDocs  int  `json:"createdDocs"`
	UpdatedDocs  int  `json:"updatedDocs"`
}

// SummaryTasks is the task part of the activation preview
type SummaryTasks struct {
	Missing    int `json:"missing"`
	DueUpdates int `json:"dueUpdates"`
}

// SummaryDocuments is the document part of the activation preview
type SummaryDocuments struct {
	Missing int `json:"missing"`
}

// SummaryResult previews what an activation would do
type SummaryResult struct {
	Students  int              `json:"students"`
	Tasks     SummaryTasks     `json:"tasks"`
	Documents SummaryDocuments `json:"documents"`
}

// =============================================================================
// Progress DTOs
// =============================================================================

// TaskProgress is the status rollup for one task type
type TaskProgress struct {
	TaskTypeID uuid.UUID `json:"taskTypeId"`
	Name       string    `json:"name"`
	Done       int       `json:"done"`
	InProgress int       `json:"inProgress"`
	Todo       int       `json:"todo"`
	Exempted   int       `json:"exempted"`
}

// DocumentProgress is the submission rollup for one document type
type DocumentProgress struct {
	DocumentTypeID uuid.UUID `json:"documentTypeId"`
	Name           string    `json:"name"`
	Submitted      int       `json:"submitted"`
	Missing        int       `json:"missing"`
}

// ProgressResult is the per-type rollup for a period and cohort
type ProgressResult struct {
	Students  int                `json:"students"`
	Tasks     []TaskProgress     `json:"tasks"`
	Documents []DocumentProgress `json:"documents"`
}

// =============================================================================
// StudentTask / StudentDocument DTOs
// =============================================================================

// StudentTaskResponse represents a student task row in API responses
type StudentTaskResponse struct {
	ID         uuid.UUID  `json:"id"`
	StudentID  uuid.UUID  `json:"studentId"`
	TaskTypeID uuid.UUID  `json:"taskTypeId"`
	Status     string     `json:"status"`
	Exempted   bool       `json:"exempted"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ToStudentTaskResponse converts a student task row
func ToStudentTaskResponse(t *tracking.StudentTask) StudentTaskResponse {
	return StudentTaskResponse{
		ID:         t.ID,
		StudentID:  t.StudentID,
		TaskTypeID: t.TaskTypeID,
		Status:     string(t.Status),
		Exempted:   t.Exempted,
		DueDate:    t.DueDate,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// UpdateStudentTaskRequest patches a student task row
type UpdateStudentTaskRequest struct {
	Status   *string    `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	Exempted *bool      `json:"exempted"`
	DueDate  *time.Time `json:"dueDate"`
}

// StudentTaskListFilter narrows the student task list
type StudentTaskListFilter struct {
	StudentID  *uuid.UUID `form:"studentId"`
	TaskTypeID *uuid.UUID `form:"taskTypeId"`
	Status     string     `form:"status" binding:"omitempty,oneof=todo in_progress done"`
	Class      string     `form:"class"`
}

// StudentDocumentResponse represents a student document row in API responses
type StudentDocumentResponse struct {
	ID             uuid.UUID  `json:"id"`
	StudentID      uuid.UUID  `json:"studentId"`
	DocumentTypeID uuid.UUID  `json:"documentTypeId"`
	Status         string     `json:"status"`
	SubmittedAt    *time.Time `json:"submittedAt,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ToStudentDocumentResponse converts a student document row
func ToStudentDocumentResponse(d *tracking.StudentDocument) StudentDocumentResponse {
	return StudentDocumentResponse{
		ID:             d.ID,
		StudentID:      d.StudentID,
		DocumentTypeID: d.DocumentTypeID,
		Status:         string(d.Status),
		SubmittedAt:    d.SubmittedAt,
		DueDate:        d.DueDate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// UpdateStudentDocumentRequest patches a student document row
type UpdateStudentDocumentRequest struct {
	Status      *string    `json:"status" binding:"omitempty,oneof=not_submitted submitted"`
	SubmittedAt *time.Time `json:"submittedAt"`
	DueDate     *time.Time `json:"dueDate"`
}

// StudentDocumentListFilter narrows the student document list
type StudentDocumentListFilter struct {
	StudentID      *uuid.UUID `form:"studentId"`
	DocumentTypeID *uuid.UUID `form:"documentTypeId"`
	Status         string     `form:"status" binding:"omitempty,oneof=not_submitted submitted"`
	Class          string     `form:"class"`
}
