package tracking

import (
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus represents the completion status of a student task
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid returns true if the status is one of the known values
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}

// StudentTask is the per-student instantiation of a TaskType.
// Rows are unique on (StudentID, TaskTypeID); the composite index
// backs the conflict fallback during concurrent activation.
type StudentTask struct {
	shared.BaseEntity
	StudentID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_task_pair,priority:1"`
	TaskTypeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_task_pair,priority:2"`
	Status     TaskStatus `gorm:"type:varchar(20);not null;default:'todo'"`
	Exempted   bool       `gorm:"not null;default:false"`
	DueDate    *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (StudentTask) TableName() string {
	return "student_tasks"
}

// NewStudentTask instantiates a task type for a student
func NewStudentTask(studentID, taskTypeID uuid.UUID, dueDate *time.Time) *StudentTask {
	return &StudentTask{
		BaseEntity: shared.NewBaseEntity(),
		StudentID:  studentID,
		TaskTypeID: taskTypeID,
		Status:     TaskStatusTodo,
		DueDate:    dueDate,
	}
}

// SetStatus transitions the task to the given status
func (t *StudentTask) SetStatus(status TaskStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown task status")
	}
	t.Status = status
	return nil
}

// SetExempted flags or unflags the student as exempted from this task.
// Exemption only affects rollup displays; the reconciliation engine
// still creates and updates exempted rows like any other.
func (t *StudentTask) SetExempted(exempted bool) {
	t.Exempted = exempted
}

// ResetProgress forces the task back to its initial state
func (t *StudentTask) ResetProgress() {
	t.Status = TaskStatusTodo
	t.Exempted = false
}

// NeedsReset reports whether ResetProgress would change the row
func (t *StudentTask) NeedsReset() bool {
	return t.Status != TaskStatusTodo || t.Exempted
}
