package tracking

import (
	"context"

	"github.com/google/uuid"
)

// StudentDocumentFilter narrows student document queries
type StudentDocumentFilter struct {
	StudentID      *uuid.UUID
	DocumentTypeID *uuid.UUID
	Status         *DocumentStatus
	Class          string
}

// StudentDocumentRepository defines the interface for student document
// persistence. There is no reliance on a storage-level uniqueness
// conflict for the (student, document type) pair: callers resolve
// existing rows with FindFirst before writing.
type StudentDocumentRepository interface {
	// FindByID finds a student document by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StudentDocument, error)

	// FindFirst finds the live row for a (student, document type) pair,
	// or shared.ErrNotFound when none exists
	FindFirst(ctx context.Context, studentID, documentTypeID uuid.UUID) (*StudentDocument, error)

	// FindForStudents finds all rows for the given students and document type
	FindForStudents(ctx context.Context, studentIDs []uuid.UUID, documentTypeID uuid.UUID) ([]StudentDocument, error)

	// FindAll finds all rows matching the filter
	FindAll(ctx context.Context, filter StudentDocumentFilter) ([]StudentDocument, error)

	// Create inserts a new row
	Create(ctx context.Context, doc *StudentDocument) error

	// Update persists changes to an existing row
	Update(ctx context.Context, doc *StudentDocument) error

	// Delete deletes a row by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
