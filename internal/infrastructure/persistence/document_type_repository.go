package persistence

import (
	"context"
	"errors"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentTypeRepository implements DocumentTypeRepository using GORM
type GormDocumentTypeRepository struct {
	db *gorm.DB
}

// NewGormDocumentTypeRepository creates a new GormDocumentTypeRepository
func NewGormDocumentTypeRepository(db *gorm.DB) *GormDocumentTypeRepository {
	return &GormDocumentTypeRepository{db: db}
}

// FindByID finds a document type by its ID
func (r *GormDocumentTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.DocumentType, error) {
	var documentType tracking.DocumentType
	if err := r.db.WithContext(ctx).First(&documentType, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &documentType, nil
}

// FindByIDs finds the document types with the given IDs
func (r *GormDocumentTypeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]tracking.DocumentType, error) {
	if len(ids) == 0 {
		return []tracking.DocumentType{}, nil
	}

	var documentTypes []tracking.DocumentType
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&documentTypes).Error; err != nil {
		return nil, err
	}
	return documentTypes, nil
}

// FindAll finds all document types matching the filter
func (r *GormDocumentTypeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tracking.DocumentType, error) {
	var documentTypes []tracking.DocumentType
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.DocumentType{}), filter)
	query = applyPagination(query, filter, typeSortable, "name ASC")

	if err := query.Find(&documentTypes).Error; err != nil {
		return nil, err
	}
	return documentTypes, nil
}

// Count counts document types matching the filter
func (r *GormDocumentTypeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&tracking.DocumentType{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document type
func (r *GormDocumentTypeRepository) Save(ctx context.Context, documentType *tracking.DocumentType) error {
	return r.db.WithContext(ctx).Save(documentType).Error
}

// Delete deletes a document type
func (r *GormDocumentTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tracking.DocumentType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDocumentTypeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormDocumentTypeRepository implements DocumentTypeRepository
var _ tracking.DocumentTypeRepository = (*GormDocumentTypeRepository)(nil)
