package tracking

import (
	"strings"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
)

// TaskType represents a named category of obligation tracked per
// student (e.g. "Signed logbook"). The default due date, when set,
// applies to student rows instantiated without a period-level
// override.
type TaskType struct {
	shared.BaseEntity
	Name           string     `gorm:"type:varchar(200);not null"`
	Description    string     `gorm:"type:text"`
	DefaultDueDate *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (TaskType) TableName() string {
	return "task_types"
}

// NewTaskType creates a new task type
func NewTaskType(name, description string, defaultDueDate *time.Time) (*TaskType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Task type name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Task type name cannot exceed 200 characters")
	}

	return &TaskType{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		Description:    description,
		DefaultDueDate: defaultDueDate,
	}, nil
}

// Update updates the task type's fields
func (t *TaskType) Update(name, description string, defaultDueDate *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Task type name cannot be empty")
	}

	t.Name = name
	t.Description = description
	t.DefaultDueDate = defaultDueDate
	return nil
}
