package roster

import (
	"context"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StudentRepository defines the interface for student persistence
type StudentRepository interface {
	// FindByID finds a student by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Student, error)

	// FindAll finds all students matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Student, error)

	// FindByClasses finds all students belonging to any of the given classes
	FindByClasses(ctx context.Context, classes []string) ([]Student, error)

	// FindByName finds a student by exact first/last name within a class
	FindByName(ctx context.Context, firstName, lastName, class string) (*Student, error)

	// ListClasses returns the distinct class keys in use, sorted
	ListClasses(ctx context.Context) ([]string, error)

	// Count counts students matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a student
	Save(ctx context.Context, student *Student) error

	// Delete deletes a student by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
