package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// StudentTaskService handles manual edits to student task rows
type StudentTaskService struct {
	studentTaskRepo tracking.StudentTaskRepository
}

// NewStudentTaskService creates a new StudentTaskService
func NewStudentTaskService(studentTaskRepo tracking.StudentTaskRepository) *StudentTaskService {
	return &StudentTaskService{
		studentTaskRepo: studentTaskRepo,
	}
}

// GetByID retrieves a student task row
func (s *StudentTaskService) GetByID(ctx context.Context, id uuid.UUID) (*StudentTaskResponse, error) {
	task, err := s.studentTaskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStudentTaskResponse(task)
	return &response, nil
}

// List retrieves student task rows matching the filter
func (s *StudentTaskService) List(ctx context.Context, filter StudentTaskListFilter) ([]StudentTaskResponse, error) {
	domainFilter := tracking.StudentTaskFilter{
		StudentID:  filter.StudentID,
		TaskTypeID: filter.TaskTypeID,
		Class:      filter.Class,
	}
	if filter.Status != "" {
		status := tracking.TaskStatus(filter.Status)
		domainFilter.Status = &status
	}

	tasks, err := s.studentTaskRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]StudentTaskResponse, len(tasks))
	for i := range tasks {
		responses[i] = ToStudentTaskResponse(&tasks[i])
	}
	return responses, nil
}

// Update patches a student task row. Absent fields are left untouched.
func (s *StudentTaskService) Update(ctx context.Context, id uuid.UUID, req UpdateStudentTaskRequest) (*StudentTaskResponse, error) {
	task, err := s.studentTaskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := task.SetStatus(tracking.TaskStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.Exempted != nil {
		task.SetExempted(*req.Exempted)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.studentTaskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	response := ToStudentTaskResponse(task)
	return &response, nil
}

// Delete deletes a student task row
func (s *StudentTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.studentTaskRepo.Delete(ctx, id)
}
