package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskTypeRepository defines the interface for task type persistence
type TaskTypeRepository interface {
	// FindByID finds a task type by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TaskType, error)

	// FindByIDs finds the task types with the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]TaskType, error)

	// FindAll finds all task types matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]TaskType, error)

	// Count counts task types matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a task type
	Save(ctx context.Context, taskType *TaskType) error

	// Delete deletes a task type by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
