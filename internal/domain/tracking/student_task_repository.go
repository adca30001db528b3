package tracking

import (
	"context"

	"github.com/google/uuid"
)

// StudentTaskFilter narrows student task queries
type StudentTaskFilter struct {
	StudentID  *uuid.UUID
	TaskTypeID *uuid.UUID
	Status     *TaskStatus
	Class      string
}

// StudentTaskRepository defines the interface for student task persistence
type StudentTaskRepository interface {
	// FindByID finds a student task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StudentTask, error)

	// FindForStudents finds all rows for the given students and task type
	FindForStudents(ctx context.Context, studentIDs []uuid.UUID, taskTypeID uuid.UUID) ([]StudentTask, error)

	// FindAll finds all rows matching the filter
	FindAll(ctx context.Context, filter StudentTaskFilter) ([]StudentTask, error)

	// Create inserts a new row. Returns shared.ErrAlreadyExists when the
	// (student, task type) pair already has a row, so callers can fall
	// back to an update when the check-then-act window races.
	Create(ctx context.Context, task *StudentTask) error

	// Update persists changes to an existing row
	Update(ctx context.Context, task *StudentTask) error

	// Upsert creates the row or, when the (student, task type) pair
	// exists, applies the due date (and reset fields when requested)
	Upsert(ctx context.Context, task *StudentTask, reset bool) error

	// Delete deletes a row by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
