package persistence

import (
	"context"
	"errors"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var typeSortable = map[string]bool{
	"name":       true,
	"created_at": true,
}

// GormTaskTypeRepository implements TaskTypeRepository using GORM
type GormTaskTypeRepository struct {
	db *gorm.DB
}

// NewGormTaskTypeRepository creates a new GormTaskTypeRepository
func NewGormTaskTypeRepository(db *gorm.DB) *GormTaskTypeRepository {
	return &GormTaskTypeRepository{db: db}
}

// FindByID finds a task type by its ID
func (r *GormTaskTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.TaskType, error) {
	var taskType tracking.TaskType
	if err := r.db.WithContext(ctx).First(&taskType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &taskType, nil
}

// FindByIDs finds the task types with the given IDs
func (r *GormTaskTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]tracking.TaskType, error) {
	if len(ids) == 0 {
		return []tracking.TaskType{}, nil
	}

	var taskTypes []tracking.TaskType
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&taskTypes).Error; err != nil {
		return nil, err
	}
	return taskTypes, nil
}

// FindAll finds all task types matching the filter
func (r *GormTaskTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.TaskType, error) {
	var taskTypes []tracking.TaskType
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.TaskType{}), filter)
	query = applyPagination(query, filter, typeSortable, "name ASC")

	if err := query.Find(&taskTypes).Error; err != nil {
		return nil, err
	}
	return taskTypes, nil
}

// Count counts task types matching the filter
func (r *GormTaskTypeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.TaskType{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a task type
func (r *GormTaskTypeRepository) Save(ctx context.Context, taskType *tracking.TaskType) error {
	return r.db.WithContext(ctx).Save(taskType).Error
}

// Delete deletes a task type
func (r *GormTaskTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracking.TaskType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTaskTypeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormTaskTypeRepository implements TaskTypeRepository
var _ tracking.TaskTypeRepository = (*GormTaskTypeRepository)(nil)
