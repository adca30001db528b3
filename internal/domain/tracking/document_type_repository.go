package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentTypeRepository defines the interface for document type persistence
type DocumentTypeRepository interface {
	// FindByID finds a document type by ID
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentType, error)

	// FindByIDs finds the document types with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]DocumentType, error)

	// FindAll finds all document types matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]DocumentType, error)

	// Count counts document types matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a document type
	Save(ctx context.Context, documentType *DocumentType) error

	// Delete deletes a document type by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
