package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// TaskTypeService handles task type business operations
type TaskTypeService struct {
	taskTypeRepo tracking.TaskTypeRepository
}

// NewTaskTypeService creates a new TaskTypeService
func NewTaskTypeService(taskTypeRepo tracking.TaskTypeRepository) *TaskTypeService {
	return &TaskTypeService{
		taskTypeRepo: taskTypeRepo,
	}
}

// Create creates a new task type
func (s *TaskTypeService) Create(ctx context.Context, req CreateTypeRequest) (*TypeResponse, error) {
	taskType, err := tracking.NewTaskType(req.Name, req.Description, req.DefaultDueDate)
	if err != nil {
		return nil, err
	}

	if err := s.taskTypeRepo.Save(ctx, taskType); err != nil {
		return nil, err
	}

	response := ToTaskTypeResponse(taskType)
	return &response, nil
}

// GetByID retrieves a task type by ID
func (s *TaskTypeService) GetByID(ctx context.Context, id uuid.UUID) (*TypeResponse, error) {
	taskType, err := s.taskTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToTaskTypeResponse(taskType)
	return &response, nil
}

// List retrieves task types with filtering and pagination
func (s *TaskTypeService) List(ctx context.Context, filter TypeListFilter) ([]TypeResponse, int64, error) {
	domainFilter := toTypeDomainFilter(filter)

	taskTypes, err := s.taskTypeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.taskTypeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TypeResponse, len(taskTypes))
	for i := range taskTypes {
		responses[i] = ToTaskTypeResponse(&taskTypes[i])
	}
	return responses, total, nil
}

// Update updates a task type
func (s *TaskTypeService) Update(ctx context.Context, id uuid.UUID, req UpdateTypeRequest) (*TypeResponse, error) {
	taskType, err := s.taskTypeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := taskType.Update(req.Name, req.Description, req.DefaultDueDate); err != nil {
		return nil, err
	}

	if err := s.taskTypeRepo.Save(ctx, taskType); err != nil {
		return nil, err
	}

	response := ToTaskTypeResponse(taskType)
	return &response, nil
}

// Delete deletes a task type
func (s *TaskTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taskTypeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.taskTypeRepo.Delete(ctx, id)
}

// toTypeDomainFilter maps the API filter onto the repository filter
// with list defaults applied
func toTypeDomainFilter(filter TypeListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}
}
