package tracking

import (
	"context"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
)

// PeriodService handles period business operations
type PeriodService struct {
	periodRepo       tracking.PeriodRepository
	taskTypeRepo     tracking.TaskTypeRepository
	documentTypeRepo tracking.DocumentTypeRepository
}

// NewPeriodService creates a new PeriodService
func NewPeriodService(
	periodRepo tracking.PeriodRepository,
	taskTypeRepo tracking.TaskTypeRepository,
	documentTypeRepo tracking.DocumentTypeRepository,
) *PeriodService {
	return &PeriodService{
		periodRepo:       periodRepo,
		taskTypeRepo:     taskTypeRepo,
		documentTypeRepo: documentTypeRepo,
	}
}

// Create creates a new period
func (s *PeriodService) Create(ctx context.Context, req CreatePeriodRequest) (*PeriodResponse, error) {
	period, err := tracking.NewPeriod(req.Name, req.StartsOn, req.EndsOn)
	if err != nil {
		return nil, err
	}

	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}

	response := ToPeriodResponse(period)
	return &response, nil
}

// GetByID retrieves a period with its association lists
func (s *PeriodService) GetByID(ctx context.Context, id uuid.UUID) (*PeriodResponse, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPeriodResponse(period)
	return &response, nil
}

// List retrieves periods with filtering and pagination
func (s *PeriodService) List(ctx context.Context, filter PeriodListFilter) ([]PeriodResponse, int64, error) {
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

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	periods, err := s.periodRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.periodRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses, total, nil
}

// Update updates a period's own fields, leaving associations untouched
func (s *PeriodService) Update(ctx context.Context, id uuid.UUID, req UpdatePeriodRequest) (*PeriodResponse, error) {
	period, err := s.periodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := period.Update(req.Name, req.StartsOn, req.EndsOn); err != nil {
		return nil, err
	}

	if err := s.periodRepo.Save(ctx, period); err != nil {
		return nil, err
	}

	response := ToPeriodResponse(period)
	return &response, nil
}

// Delete deletes a period and its associations. Student rows already
// instantiated from the period survive; they belong to the students.
func (s *PeriodService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.periodRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.periodRepo.Delete(ctx, id)
}

// ReplaceTaskTypes replaces the period's ordered task type list. Every
// referenced task type must exist.
func (s *PeriodService) ReplaceTaskTypes(ctx context.Context, periodID uuid.UUID, req ReplaceAssociationsRequest) (*PeriodResponse, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Associations))
	for i, a := range req.Associations {
		ids[i] = a.TypeID
	}
	if err := s.verifyTaskTypes(ctx, ids); err != nil {
		return nil, err
	}

	assocs := make([]tracking.PeriodTaskType, len(req.Associations))
	for i, a := range req.Associations {
		assocs[i] = tracking.PeriodTaskType{
			BaseEntity: shared.NewBaseEntity(),
			TaskTypeID: a.TypeID,
			DueDate:    a.DueDate,
		}
	}
	if err := period.SetTaskTypes(assocs); err != nil {
		return nil, err
	}

	if err := s.periodRepo.ReplaceTaskTypes(ctx, periodID, period.TaskTypes); err != nil {
		return nil, err
	}

	// Re-read so the response carries the preloaded type names
	period, err = s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	response := ToPeriodResponse(period)
	return &response, nil
}

// ReplaceDocumentTypes replaces the period's ordered document type list
func (s *PeriodService) ReplaceDocumentTypes(ctx context.Context, periodID uuid.UUID, req ReplaceAssociationsRequest) (*PeriodResponse, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Associations))
	for i, a := range req.Associations {
		ids[i] = a.TypeID
	}
	if err := s.verifyDocumentTypes(ctx, ids); err != nil {
		return nil, err
	}

	assocs := make([]tracking.PeriodDocumentType, len(req.Associations))
	for i, a := range req.Associations {
		assocs[i] = tracking.PeriodDocumentType{
			BaseEntity:     shared.NewBaseEntity(),
			DocumentTypeID: a.TypeID,
			DueDate:        a.DueDate,
		}
	}
	if err := period.SetDocumentTypes(assocs); err != nil {
		return nil, err
	}

	if err := s.periodRepo.ReplaceDocumentTypes(ctx, periodID, period.DocumentTypes); err != nil {
		return nil, err
	}

	period, err = s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	response := ToPeriodResponse(period)
	return &response, nil
}

func (s *PeriodService) verifyTaskTypes(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.taskTypeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if missing := missingIDs(ids, taskTypeIDs(found)); len(missing) > 0 {
		return shared.NewDomainError("UNKNOWN_TYPE", "Unknown task type: "+missing[0].String())
	}
	return nil
}

func (s *PeriodService) verifyDocumentTypes(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.documentTypeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if missing := missingIDs(ids, documentTypeIDs(found)); len(missing) > 0 {
		return shared.NewDomainError("UNKNOWN_TYPE", "Unknown document type: "+missing[0].String())
	}
	return nil
}

func taskTypeIDs(types []tracking.TaskType) map[uuid.UUID]bool {
	ids := make(map[uuid.UUID]bool, len(types))
	for i := range types {
		ids[types[i].ID] = true
	}
	return ids
}

func documentTypeIDs(types []tracking.DocumentType) map[uuid.UUID]bool {
	ids := make(map[uuid.UUID]bool, len(types))
	for i := range types {
		ids[types[i].ID] = true
	}
	return ids
}

func missingIDs(wanted []uuid.UUID, found map[uuid.UUID]bool) []uuid.UUID {
	var missing []uuid.UUID
	for _, id := range wanted {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}
