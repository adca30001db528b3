package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStudentDocumentRepository implements StudentDocumentRepository using GORM
type GormStudentDocumentRepository struct {
	db *gorm.DB
}

// NewGormStudentDocumentRepository creates a new GormStudentDocumentRepository
func NewGormStudentDocumentRepository(db *gorm.DB) *GormStudentDocumentRepository {
	return &GormStudentDocumentRepository{db: db}
}

// FindByID finds a student document by its ID
func (r *GormStudentDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.StudentDocument, error) {
	var doc tracking.StudentDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindFirst finds the live row for a (student, document type) pair.
// The oldest row wins when legacy data still holds duplicates.
func (r *GormStudentDocumentRepository) FindFirst(ctx context.Context, studentID, documentTypeID uuid.UUID) (*tracking.StudentDocument, error) {
	var doc tracking.StudentDocument
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND document_type_id = ?", studentID, documentTypeID).
		Order("created_at ASC").
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindForStudents finds all rows for the given students and document type
func (r *GormStudentDocumentRepository) FindForStudents(ctx context.Context, studentIDs []uuid.UUID, documentTypeID uuid.UUID) ([]tracking.StudentDocument, error) {
	if len(studentIDs) == 0 {
		return []tracking.StudentDocument{}, nil
	}

	var docs []tracking.StudentDocument
	if err := r.db.WithContext(ctx).
		Where("student_id IN ? AND document_type_id = ?", studentIDs, documentTypeID).
		Order("created_at ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindAll finds all rows matching the filter
func (r *GormStudentDocumentRepository) FindAll(ctx context.Context, filter tracking.StudentDocumentFilter) ([]tracking.StudentDocument, error) {
	query := r.db.WithContext(ctx).Model(&tracking.StudentDocument{})

	if filter.StudentID != nil {
		query = query.Where("student_id = ?", *filter.StudentID)
	}
	if filter.DocumentTypeID != nil {
		query = query.Where("document_type_id = ?", *filter.DocumentTypeID)
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

	var docs []tracking.StudentDocument
	if err := query.Order("created_at ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Create inserts a new row
func (r *GormStudentDocumentRepository) Create(ctx context.Context, doc *tracking.StudentDocument) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes to an existing row
func (r *GormStudentDocumentRepository) Update(ctx context.Context, doc *tracking.StudentDocument) error {
	result := r.db.WithContext(ctx).
		Model(&tracking.StudentDocument{}).
		Where("id = ?", doc.ID).
		Updates(map[string]any{
			"status":       doc.Status,
			"submitted_at": doc.SubmittedAt,
			"due_date":     doc.DueDate,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a row by ID
func (r *GormStudentDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracking.StudentDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormStudentDocumentRepository implements StudentDocumentRepository
var _ tracking.StudentDocumentRepository = (*GormStudentDocumentRepository)(nil)
