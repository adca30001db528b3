package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// DocumentTypeService handles document type business operations
type DocumentTypeService struct {
	documentTypeRepo tracking.DocumentTypeRepository
}

// NewDocumentTypeService creates a new DocumentTypeService
func NewDocumentTypeService(documentTypeRepo tracking.DocumentTypeRepository) *DocumentTypeService {
	return &DocumentTypeService{
		documentTypeRepo: documentTypeRepo,
	}
}

// Create creates a new document type
func (s *DocumentTypeService) Create(ctx context.Context, req CreateTypeRequest) (*TypeResponse, error) {
	documentType, err := tracking.NewDocumentType(req.Name, req.Description, req.DefaultDueDate)
	if err != nil {
		return nil, err
	}

	if err := s.documentTypeRepo.Save(ctx, documentType); err != nil {
		return nil, err
	}

	response := ToDocumentTypeResponse(documentType)
	return &response, nil
}

// GetByID retrieves a document type by ID
func (s *DocumentTypeService) GetByID(ctx context.Context, id uuid.UUID) (*TypeResponse, error) {
	documentType, err := s.documentTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToDocumentTypeResponse(documentType)
	return &response, nil
}

// List retrieves document types with filtering and pagination
func (s *DocumentTypeService) List(ctx context.Context, filter TypeListFilter) ([]TypeResponse, int64, error) {
	domainFilter := toTypeDomainFilter(filter)

	documentTypes, err := s.documentTypeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.documentTypeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TypeResponse, len(documentTypes))
	for i := range documentTypes {
		responses[i] = ToDocumentTypeResponse(&documentTypes[i])
	}
	return responses, total, nil
}

// Update updates a document type
func (s *DocumentTypeService) Update(ctx context.Context, id uuid.UUID, req UpdateTypeRequest) (*TypeResponse, error) {
	documentType, err := s.documentTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := documentType.Update(req.Name, req.Description, req.DefaultDueDate); err != nil {
		return nil, err
	}

	if err := s.documentTypeRepo.Save(ctx, documentType); err != nil {
		return nil, err
	}

	response := ToDocumentTypeResponse(documentType)
	return &response, nil
}

// Delete deletes a document type
func (s *DocumentTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.documentTypeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.documentTypeRepo.Delete(ctx, id)
}
