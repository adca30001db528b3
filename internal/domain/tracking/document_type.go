package tracking

import (
	"strings"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
)

// DocumentType represents a named category of document collected per
// student (e.g. "Insurance certificate").
type DocumentType struct {
	shared.BaseEntity
	Name           string     `gorm:"type:varchar(200);not null"`
	Description    string     `gorm:"type:text"`
	DefaultDueDate *time.Time `gorm:"type:timestamptz"`
}

// TableName returns the table name for GORM
func (DocumentType) TableName() string {
	return "document_types"
}

// NewDocumentType creates a new document type
func NewDocumentType(name, description string, defaultDueDate *time.Time) (*DocumentType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Document type name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Document type name cannot exceed 200 characters")
	}

	return &DocumentType{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		Description:    description,
		DefaultDueDate: defaultDueDate,
	}, nil
}

// Update updates the document type's fields
func (d *DocumentType) Update(name, description string, defaultDueDate *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Document type name cannot be empty")
	}

	d.Name = name
	d.Description = description
	d.DefaultDueDate = defaultDueDate
	return nil
}
