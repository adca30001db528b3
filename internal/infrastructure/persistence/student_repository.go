package persistence

import (
	"context"
	"errors"

	"github.com/classtrack/backend/internal/domain/roster"
	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var studentSortable = map[string]bool{
	"first_name": true,
	"last_name":  true,
	"class":      true,
	"created_at": true,
}

// GormStudentRepository implements StudentRepository using GORM
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// FindByID finds a student by its ID
func (r *GormStudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*roster.Student, error) {
	var student roster.Student
	if err := r.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// FindAll finds all students matching the filter
func (r *GormStudentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]roster.Student, error) {
	var students []roster.Student
	query := r.applyFilter(r.db.WithContext(ctx).Model(&roster.Student{}), filter)
	query = applyPagination(query, filter, studentSortable, "class ASC, last_name ASC, first_name ASC")

	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindByClasses finds all students belonging to any of the given classes
func (r *GormStudentRepository) FindByClasses(ctx context.Context, classes []string) ([]roster.Student, error) {
	if len(classes) == 0 {
		return []roster.Student{}, nil
	}

	var students []roster.Student
	if err := r.db.WithContext(ctx).
		Where("class IN ?", classes).
		Order("class ASC, last_name ASC, first_name ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// FindByName finds a student by exact first/last name within a class
func (r *GormStudentRepository) FindByName(ctx context.Context, firstName, lastName, class string) (*roster.Student, error) {
	var student roster.Student
	if err := r.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ? AND class = ?", firstName, lastName, class).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// ListClasses returns the distinct class keys in use, sorted
func (r *GormStudentRepository) ListClasses(ctx context.Context) ([]string, error) {
	var classes []string
	if err := r.db.WithContext(ctx).
		Model(&roster.Student{}).
		Distinct("class").
		Order("class ASC").
		Pluck("class", &classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// Count counts students matching the filter
func (r *GormStudentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&roster.Student{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, student *roster.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

// Delete deletes a student
func (r *GormStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&roster.Student{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStudentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "class":
			query = query.Where("class = ?", value)
		}
	}
	return query
}

// Ensure GormStudentRepository implements StudentRepository
var _ roster.StudentRepository = (*GormStudentRepository)(nil)
