package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStudentTaskRepository implements StudentTaskRepository using GORM
type GormStudentTaskRepository struct {
	db *gorm.DB
}

// NewGormStudentTaskRepository creates a new GormStudentTaskRepository
func NewGormStudentTaskRepository(db *gorm.DB) *GormStudentTaskRepository {
	return &GormStudentTaskRepository{db: db}
}

// FindByID finds a student task by its ID
func (r *GormStudentTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.StudentTask, error) {
	var task tracking.StudentTask
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindForStudents finds all rows for the given students and task type
func (r *GormStudentTaskRepository) FindForStudents(ctx context.Context, studentIDs []uuid.UUID, taskTypeID uuid.UUID) ([]tracking.StudentTask, error) {
	if len(studentIDs) == 0 {
		return []tracking.StudentTask{}, nil
	}

	var tasks []tracking.StudentTask
	if err := r.db.WithContext(ctx).
		Where("student_id IN ? AND task_type_id = ?", studentIDs, taskTypeID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindAll finds all rows matching the filter
func (r *GormStudentTaskRepository) FindAll(ctx context.Context, filter tracking.StudentTaskFilter) ([]tracking.StudentTask, error) {
	query := r.db.WithContext(ctx).Model(&tracking.StudentTask{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.TaskTypeID != nil {
		query = query.Where("task_type_id = ?", *filter.TaskTypeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Class != "" {
		query = query.Where(
			"student_id IN (?)",
			r.db.Model(&studentIDsByClass{}).Select("id").Where("class = ?", filter.Class),
		)
	}

	var tasks []tracking.StudentTask
	if err := query.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// studentIDsByClass is a narrow view of the students table used for
// class-scoped subqueries without importing the roster package's model.
type studentIDsByClass struct {
	ID    uuid.UUID
	Class string
}

func (studentIDsByClass) TableName() string { return "students" }

// Create inserts a new row. A unique violation on the
// (student, task type) pair is reported as shared.ErrAlreadyExists so
// callers can fall back to updating the row that won the race.
func (r *GormStudentTaskRepository) Create(ctx context.Context, task *tracking.StudentTask) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing row
func (r *GormStudentTaskRepository) Update(ctx context.Context, task *tracking.StudentTask) error {
	result := r.db.WithContext(ctx).
		Model(&tracking.StudentTask{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"status":     task.Status,
			"exempted":   task.Exempted,
			"due_date":   task.DueDate,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Upsert creates the row or, when the (student, task type) pair already
// exists, refreshes its due date. With reset the existing row's progress
// is also forced back to its initial state.
func (r *GormStudentTaskRepository) Upsert(ctx context.Context, task *tracking.StudentTask, reset bool) error {
	assignments := map[string]any{
		"due_date":   task.DueDate,
		"updated_at": time.Now(),
	}
	if reset {
		assignments["status"] = tracking.TaskStatusTodo
		assignments["exempted"] = false
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "task_type_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(task).Error
}

// Delete deletes a row by ID
func (r *GormStudentTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracking.StudentTask{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a storage-level unique
// constraint violation (Postgres class 23505).
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Ensure GormStudentTaskRepository implements StudentTaskRepository
var _ tracking.StudentTaskRepository = (*GormStudentTaskRepository)(nil)
