package tracking

import (
	"context"
	"errors"
	"strings"

	"github.com/classtrack/backend/internal/domain/roster"
	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivationService reconciles student rows against a period's
// configuration. Activation, its dry run and the summary preview all
// derive from the same plan, so a preview always matches what a
// subsequent apply would do against unchanged data.
type ActivationService struct {
	periodRepo      tracking.PeriodReader
	studentRepo     roster.StudentRepository
	studentTaskRepo tracking.StudentTaskRepository
	studentDocRepo  tracking.StudentDocumentRepository
	logger          *zap.Logger
}

// NewActivationService creates a new ActivationService
func NewActivationService(
	periodRepo tracking.PeriodReader,
	studentRepo roster.StudentRepository,
	studentTaskRepo tracking.StudentTaskRepository,
	studentDocRepo tracking.StudentDocumentRepository,
	logger *zap.Logger,
) *ActivationService {
	return &ActivationService{
		periodRepo:      periodRepo,
		studentRepo:     studentRepo,
		studentTaskRepo: studentTaskRepo,
		studentDocRepo:  studentDocRepo,
		logger:          logger,
	}
}

// Activate aligns the rows of every student in the given classes with
// the period's association lists. The operation is idempotent: running
// it again against unchanged data is a no-op. Writes are applied row
// by row; an unexpected storage error aborts the run and may leave a
// partial application, which a later re-run completes.
func (s *ActivationService) Activate(ctx context.Context, periodID uuid.UUID, req ActivateRequest) (*ActivationResult, error) {
	classes, err := normalizeClasses(req.Classes)
	if err != nil {
		return nil, err
	}
	opts := req.ToDomainOptions()

	plan, students, err := s.buildPlan(ctx, periodID, classes, opts)
	if err != nil {
		return nil, err
	}

	result := &ActivationResult{
		DryRun:   opts.DryRun,
		Students: plan.Students,
	}
	if opts.DryRun {
		result.CreatedTasks = len(plan.TaskCreates)
		result.UpdatedTasks = len(plan.TaskUpdates)
		result.CreatedDocs = len(plan.DocumentCreates)
		result.UpdatedDocs = len(plan.DocumentUpdates)
		return result, nil
	}

	if err := s.applyTasks(ctx, plan, opts, result); err != nil {
		return nil, err
	}
	if err := s.applyDocuments(ctx, plan, opts, result); err != nil {
		return nil, err
	}

	s.logger.Info("period activated",
		zap.String("period_id", periodID.String()),
		zap.Strings("classes", classes),
		zap.Int("students", len(students)),
		zap.Int("created_tasks", result.CreatedTasks),
		zap.Int("updated_tasks", result.UpdatedTasks),
		zap.Int("created_docs", result.CreatedDocs),
		zap.Int("updated_docs", result.UpdatedDocs),
	)
	return result, nil
}

// Summary previews an activation run with default options. Counts come
// from the same planner Activate uses.
func (s *ActivationService) Summary(ctx context.Context, periodID uuid.UUID, classes []string) (*SummaryResult, error) {
	classes, err := normalizeClasses(classes)
	if err != nil {
		return nil, err
	}

	plan, _, err := s.buildPlan(ctx, periodID, classes, tracking.DefaultOptions())
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		Students: plan.Students,
		Tasks: SummaryTasks{
			Missing:    len(plan.TaskCreates),
			DueUpdates: len(plan.TaskUpdates),
		},
		Documents: SummaryDocuments{
			Missing: len(plan.DocumentCreates),
		},
	}, nil
}

// Progress rolls up per-type completion for the period's cohort. An
// empty class list covers every class. Students without a row for an
// associated type count as todo (tasks) or missing (documents).
func (s *ActivationService) Progress(ctx context.Context, periodID uuid.UUID, classes []string) (*ProgressResult, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return nil, err
	}

	classes = trimClasses(classes)
	if len(classes) == 0 {
		classes, err = s.studentRepo.ListClasses(ctx)
		if err != nil {
			return nil, err
		}
	}
	students, err := s.studentRepo.FindByClasses(ctx, classes)
	if err != nil {
		return nil, err
	}
	studentIDs := make([]uuid.UUID, len(students))
	for i := range students {
		studentIDs[i] = students[i].ID
	}

	result := &ProgressResult{
		Students:  len(students),
		Tasks:     make([]TaskProgress, 0, len(period.TaskTypes)),
		Documents: make([]DocumentProgress, 0, len(period.DocumentTypes)),
	}

	for i := range period.TaskTypes {
		assoc := &period.TaskTypes[i]
		rows, err := s.studentTaskRepo.FindForStudents(ctx, studentIDs, assoc.TaskTypeID)
		if err != nil {
			return nil, err
		}

		progress := TaskProgress{TaskTypeID: assoc.TaskTypeID, Name: assoc.TaskType.Name}
		byStudent := make(map[uuid.UUID]tracking.StudentTask, len(rows))
		for _, row := range rows {
			if _, ok := byStudent[row.StudentID]; !ok {
				byStudent[row.StudentID] = row
			}
		}
		for _, id := range studentIDs {
			row, ok := byStudent[id]
			switch {
			case !ok:
				progress.Todo++
			case row.Exempted:
				progress.Exempted++
			case row.Status == tracking.TaskStatusDone:
				progress.Done++
			case row.Status == tracking.TaskStatusInProgress:
				progress.InProgress++
			default:
				progress.Todo++
			}
		}
		result.Tasks = append(result.Tasks, progress)
	}

	for i := range period.DocumentTypes {
		assoc := &period.DocumentTypes[i]
		rows, err := s.studentDocRepo.FindForStudents(ctx, studentIDs, assoc.DocumentTypeID)
		if err != nil {
			return nil, err
		}

		progress := DocumentProgress{DocumentTypeID: assoc.DocumentTypeID, Name: assoc.DocumentType.Name}
		submitted := make(map[uuid.UUID]bool, len(rows))
		seen := make(map[uuid.UUID]bool, len(rows))
		for _, row := range rows {
			if seen[row.StudentID] {
				continue
			}
			seen[row.StudentID] = true
			if row.Status == tracking.DocumentStatusSubmitted {
				submitted[row.StudentID] = true
			}
		}
		progress.Submitted = len(submitted)
		progress.Missing = len(students) - len(submitted)
		result.Documents = append(result.Documents, progress)
	}

	return result, nil
}

// buildPlan loads the period, resolves the cohort and the existing
// rows, and diffs them into a plan
func (s *ActivationService) buildPlan(ctx context.Context, periodID uuid.UUID, classes []string, opts tracking.Options) (tracking.Plan, []roster.Student, error) {
	period, err := s.periodRepo.FindByID(ctx, periodID)
	if err != nil {
		return tracking.Plan{}, nil, err
	}

	students, err := s.studentRepo.FindByClasses(ctx, classes)
	if err != nil {
		return tracking.Plan{}, nil, err
	}

	input := tracking.PlanInput{
		TaskAssociations:     period.TaskTypes,
		DocumentAssociations: period.DocumentTypes,
		StudentIDs:           make([]uuid.UUID, len(students)),
	}
	for i := range students {
		input.StudentIDs[i] = students[i].ID
	}

	for i := range period.TaskTypes {
		rows, err := s.studentTaskRepo.FindForStudents(ctx, input.StudentIDs, period.TaskTypes[i].TaskTypeID)
		if err != nil {
			return tracking.Plan{}, nil, err
		}
		input.ExistingTasks = append(input.ExistingTasks, rows...)
	}
	for i := range period.DocumentTypes {
		rows, err := s.studentDocRepo.FindForStudents(ctx, input.StudentIDs, period.DocumentTypes[i].DocumentTypeID)
		if err != nil {
			return tracking.Plan{}, nil, err
		}
		input.ExistingDocuments = append(input.ExistingDocuments, rows...)
	}

	return tracking.BuildPlan(input, opts), students, nil
}

// applyTasks executes the task part of the plan. A concurrent
// activation can insert a row between planning and writing; the unique
// pair constraint surfaces that as ErrAlreadyExists and the create
// degrades into an update.
func (s *ActivationService) applyTasks(ctx context.Context, plan tracking.Plan, opts tracking.Options, result *ActivationResult) error {
	for _, c := range plan.TaskCreates {
		task := tracking.NewStudentTask(c.StudentID, c.TaskTypeID, c.DueDate)
		if opts.OnlyMissing {
			err := s.studentTaskRepo.Create(ctx, task)
			switch {
			case err == nil:
				result.CreatedTasks++
			case errors.Is(err, shared.ErrAlreadyExists):
				if err := s.studentTaskRepo.Upsert(ctx, task, opts.Reset); err != nil {
					return err
				}
				result.UpdatedTasks++
			default:
				return err
			}
			continue
		}
		if err := s.studentTaskRepo.Upsert(ctx, task, opts.Reset); err != nil {
			return err
		}
		result.CreatedTasks++
	}

	for _, u := range plan.TaskUpdates {
		row := u.Row
		if u.SetDueDate {
			row.DueDate = u.DueDate
		}
		if u.Reset {
			row.ResetProgress()
		}
		if err := s.studentTaskRepo.Update(ctx, &row); err != nil {
			return err
		}
		result.UpdatedTasks++
	}
	return nil
}

// applyDocuments executes the document part of the plan. Documents have
// no conflict primitive in the store; a racing insert is resolved with
// an explicit FindFirst lookup.
func (s *ActivationService) applyDocuments(ctx context.Context, plan tracking.Plan, opts tracking.Options, result *ActivationResult) error {
	for _, c := range plan.DocumentCreates {
		doc := tracking.NewStudentDocument(c.StudentID, c.DocumentTypeID, c.DueDate)
		err := s.studentDocRepo.Create(ctx, doc)
		switch {
		case err == nil:
			result.CreatedDocs++
		case errors.Is(err, shared.ErrAlreadyExists):
			existing, err := s.studentDocRepo.FindFirst(ctx, c.StudentID, c.DocumentTypeID)
			if err != nil {
				return err
			}
			existing.DueDate = c.DueDate
			if opts.Reset {
				existing.ResetProgress()
			}
			if err := s.studentDocRepo.Update(ctx, existing); err != nil {
				return err
			}
			result.UpdatedDocs++
		default:
			return err
		}
	}

	for _, u := range plan.DocumentUpdates {
		row := u.Row
		if u.SetDueDate {
			row.DueDate = u.DueDate
		}
		if u.Reset {
			row.ResetProgress()
		}
		if err := s.studentDocRepo.Update(ctx, &row); err != nil {
			return err
		}
		result.UpdatedDocs++
	}
	return nil
}

// normalizeClasses trims and deduplicates the class list, rejecting an
// empty result
func normalizeClasses(classes []string) ([]string, error) {
	classes = trimClasses(classes)
	if len(classes) == 0 {
		return nil, shared.NewDomainError("INVALID_CLASSES", "At least one class is required")
	}
	return classes, nil
}

func trimClasses(classes []string) []string {
	seen := make(map[string]bool, len(classes))
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
