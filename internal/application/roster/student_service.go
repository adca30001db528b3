package roster

import (
	"context"
	"errors"

	"github.com/classtrack/backend/internal/domain/roster"
	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StudentService handles student roster business operations
type StudentService struct {
	studentRepo roster.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo roster.StudentRepository) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
	}
}

// Create creates a new student. A student with the same name in the
// same class is rejected to keep the roster import dedupe meaningful.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*StudentResponse, error) {
	student, err := roster.NewStudent(req.FirstName, req.LastName, req.Class)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		student.Notes = req.Notes
	}

	existing, err := s.studentRepo.FindByName(ctx, student.FirstName, student.LastName, student.Class)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A student with this name already exists in this class")
	}

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	response := ToStudentResponse(student)
	return &response, nil
}

// GetByID retrieves a student by ID
func (s *StudentService) GetByID(ctx context.Context, id uuid.UUID) (*StudentResponse, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStudentResponse(student)
	return &response, nil
}

// List retrieves students with filtering and pagination
func (s *StudentService) List(ctx context.Context, filter StudentListFilter) ([]StudentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "last_name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Class != "" {
		domainFilter.Filters["class"] = filter.Class
	}

	students, err := s.studentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.studentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StudentResponse, len(students))
	for i := range students {
		responses[i] = ToStudentResponse(&students[i])
	}
	return responses, total, nil
}

// ListClasses returns the distinct class keys in use
func (s *StudentService) ListClasses(ctx context.Context) ([]string, error) {
	return s.studentRepo.ListClasses(ctx)
}

// Update updates a student
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, req UpdateStudentRequest) (*StudentResponse, error) {
	student, err := s.studentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := student.Update(req.FirstName, req.LastName, req.Class); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		student.Notes = *req.Notes
	}

	if err := s.studentRepo.Save(ctx, student); err != nil {
		return nil, err
	}

	response := ToStudentResponse(student)
	return &response, nil
}

// Delete deletes a student. The student's task and document rows go
// with them via the storage-level cascade.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.studentRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.studentRepo.Delete(ctx, id)
}
