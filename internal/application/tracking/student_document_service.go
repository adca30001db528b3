package tracking

import (
	"context"
	"time"

	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// StudentDocumentService handles manual edits to student document rows
type StudentDocumentService struct {
	studentDocRepo tracking.StudentDocumentRepository
	now            func() time.Time
}

// NewStudentDocumentService creates a new StudentDocumentService
func NewStudentDocumentService(studentDocRepo tracking.StudentDocumentRepository) *StudentDocumentService {
	return &StudentDocumentService{
		studentDocRepo: studentDocRepo,
		now:            time.Now,
	}
}

// GetByID retrieves a student document row
func (s *StudentDocumentService) GetByID(ctx context.Context, id uuid.UUID) (*StudentDocumentResponse, error) {
	doc, err := s.studentDocRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStudentDocumentResponse(doc)
	return &response, nil
}

// List retrieves student document rows matching the filter
func (s *StudentDocumentService) List(ctx context.Context, filter StudentDocumentListFilter) ([]StudentDocumentResponse, error) {
	domainFilter := tracking.StudentDocumentFilter{
		StudentID:      filter.StudentID,
		DocumentTypeID: filter.DocumentTypeID,
		Class:          filter.Class,
	}
	if filter.Status != "" {
		status := tracking.DocumentStatus(filter.Status)
		domainFilter.Status = &status
	}

	docs, err := s.studentDocRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]StudentDocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToStudentDocumentResponse(&docs[i])
	}
	return responses, nil
}

// Update patches a student document row. Marking a document submitted
// without a submittedAt stamps the current time; reverting to
// not_submitted clears it.
func (s *StudentDocumentService) Update(ctx context.Context, id uuid.UUID, req UpdateStudentDocumentRequest) (*StudentDocumentResponse, error) {
	doc, err := s.studentDocRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch tracking.DocumentStatus(*req.Status) {
		case tracking.DocumentStatusSubmitted:
			at := s.now()
			if req.SubmittedAt != nil {
				at = *req.SubmittedAt
			}
			doc.Submit(at)
		case tracking.DocumentStatusNotSubmitted:
			doc.Unsubmit()
		}
	} else if req.SubmittedAt != nil {
		doc.Submit(*req.SubmittedAt)
	}
	if req.DueDate != nil {
		doc.DueDate = req.DueDate
	}

	if err := s.studentDocRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	response := ToStudentDocumentResponse(doc)
	return &response, nil
}

// Delete deletes a student document row
func (s *StudentDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.studentDocRepo.Delete(ctx, id)
}
