package persistence

import (
	"context"
	"errors"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var periodSortable = map[string]bool{
	"name":       true,
	"starts_on":  true,
	"created_at": true,
}

// GormPeriodRepository implements PeriodRepository using GORM
type GormPeriodRepository struct {
	db *gorm.DB
}

// NewGormPeriodRepository creates a new GormPeriodRepository
func NewGormPeriodRepository(db *gorm.DB) *GormPeriodRepository {
	return &GormPeriodRepository{db: db}
}

// withAssociations preloads both association lists in position order,
// each with its type so effective due dates can be resolved.
func (r *GormPeriodRepository) withAssociations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("TaskTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("TaskTypes.TaskType").
		Preload("DocumentTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("DocumentTypes.DocumentType")
}

// FindByID finds a period by its ID, associations included
func (r *GormPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.Period, error) {
	var period tracking.Period
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&period, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &period, nil
}

// FindAll finds all periods matching the filter, associations included
func (r *GormPeriodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.Period, error) {
	var periods []tracking.Period
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.Period{}), filter)
	query = applyPagination(query, filter, periodSortable, "starts_on ASC, name ASC")

	if err := r.withAssociations(query).Find(&periods).Error; err != nil {
		return nil, err
	}
	return periods, nil
}

// Count counts periods matching the filter
func (r *GormPeriodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.Period{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a period. Association lists are managed
// through ReplaceTaskTypes and ReplaceDocumentTypes, never here.
func (r *GormPeriodRepository) Save(ctx context.Context, period *tracking.Period) error {
	return r.db.WithContext(ctx).
		Omit("TaskTypes", "DocumentTypes").
		Save(period).Error
}

// ReplaceTaskTypes replaces the period's task type association list
func (r *GormPeriodRepository) ReplaceTaskTypes(ctx context.Context, periodID uuid.UUID, assocs []tracking.PeriodTaskType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period_id = ?", periodID).
			Delete(&tracking.PeriodTaskType{}).Error; err != nil {
			return err
		}
		if len(assocs) == 0 {
			return nil
		}
		return tx.Omit("TaskType").Create(&assocs).Error
	})
}

// ReplaceDocumentTypes replaces the period's document type association list
func (r *GormPeriodRepository) ReplaceDocumentTypes(ctx context.Context, periodID uuid.UUID, assocs []tracking.PeriodDocumentType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period_id = ?", periodID).
			Delete(&tracking.PeriodDocumentType{}).Error; err != nil {
			return err
		}
		if len(assocs) == 0 {
			return nil
		}
		return tx.Omit("DocumentType").Create(&assocs).Error
	})
}

// Delete deletes a period and its associations
func (r *GormPeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("period_id = ?", id).
			Delete(&tracking.PeriodTaskType{}).Error; err != nil {
			return err
		}
		if err := tx.Where("period_id = ?", id).
			Delete(&tracking.PeriodDocumentType{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&tracking.Period{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormPeriodRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormPeriodRepository implements PeriodRepository
var _ tracking.PeriodRepository = (*GormPeriodRepository)(nil)
