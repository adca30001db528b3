package tracking

import (
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentStatus represents the submission status of a student document
type DocumentStatus string

const (
	DocumentStatusNotSubmitted DocumentStatus = "not_submitted"
	DocumentStatusSubmitted    DocumentStatus = "submitted"
)

// IsValid returns true if the status is one of the known values
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusNotSubmitted, DocumentStatusSubmitted:
		return true
	default:
		return false
	}
}

// StudentDocument is the per-student instantiation of a DocumentType.
// Logically unique on (StudentID, DocumentTypeID); the engine resolves
// existing rows with an explicit lookup rather than a conflict
// primitive, so duplicates from historical data stay harmless.
type StudentDocument struct {
	shared.BaseEntity
	StudentID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_student_document_pair,priority:1"`
	DocumentTypeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_student_document_pair,priority:2"`
	Status         DocumentStatus `gorm:"type:varchar(20);not null;default:'not_submitted'"`
	SubmittedAt    *time.Time     `gorm:"type:timestamptz"`
	DueDate        *time.Time     `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (StudentDocument) TableName() string {
	return "student_documents"
}

// NewStudentDocument instantiates a document type for a student
func NewStudentDocument(studentID, documentTypeID uuid.UUID, dueDate *time.Time) *StudentDocument {
	return &StudentDocument{
		BaseEntity:     shared.NewBaseEntity(),
		StudentID:      studentID,
		DocumentTypeID: documentTypeID,
		Status:         DocumentStatusNotSubmitted,
		DueDate:        dueDate,
	}
}

// Submit marks the document as submitted at the given time
func (d *StudentDocument) Submit(at time.Time) {
	d.Status = DocumentStatusSubmitted
	d.SubmittedAt = &at
}

// Unsubmit reverts the document to not submitted
func (d *StudentDocument) Unsubmit() {
	d.Status = DocumentStatusNotSubmitted
	d.SubmittedAt = nil
}

// ResetProgress forces the document back to its initial state
func (d *StudentDocument) ResetProgress() {
	d.Status = DocumentStatusNotSubmitted
	d.SubmittedAt = nil
}

// NeedsReset reports whether ResetProgress would change the row
func (d *StudentDocument) NeedsReset() bool {
	return d.Status != DocumentStatusNotSubmitted || d.SubmittedAt != nil
}
