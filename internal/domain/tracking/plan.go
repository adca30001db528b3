package tracking

import (
	"time"

	"github.com/google/uuid"
)

// Options controls how period activation reconciles student rows
type Options struct {
	// DryRun computes counts without mutating storage
	DryRun bool
	// OnlyMissing leaves existing rows' status and exemption untouched;
	// existing rows only get their due date refreshed, and only missing
	// rows are created. When false the engine upserts instead.
	OnlyMissing bool
	// Reset forces rows reached through the update path back to their
	// initial status (todo / not_submitted, exemption and submission
	// timestamps cleared)
	Reset bool
}

// DefaultOptions returns the activation defaults: apply mode, missing
// rows only, no reset.
func DefaultOptions() Options {
	return Options{OnlyMissing: true}
}

// resetOnUpdate reports whether reset fields apply to rows found
// during the diff. In OnlyMissing mode reset only applies on the
// create-conflict fallback, which the applier handles itself.
func (o Options) resetOnUpdate() bool {
	return o.Reset && !o.OnlyMissing
}

// TaskCreate is a planned instantiation of a task type for a student
type TaskCreate struct {
	StudentID  uuid.UUID
	TaskTypeID uuid.UUID
	DueDate    *time.Time
}

// TaskUpdate is a planned write to an existing student task row
type TaskUpdate struct {
	Row        StudentTask
	DueDate    *time.Time
	SetDueDate bool
	Reset      bool
}

// DocumentCreate is a planned instantiation of a document type for a student
type DocumentCreate struct {
	StudentID      uuid.UUID
	DocumentTypeID uuid.UUID
	DueDate        *time.Time
}

// DocumentUpdate is a planned write to an existing student document row
type DocumentUpdate struct {
	Row        StudentDocument
	DueDate    *time.Time
	SetDueDate bool
	Reset      bool
}

// PlanInput carries the data BuildPlan diffs: the period's association
// lists (types preloaded for default due dates), the resolved target
// students, and the existing rows for those students across the
// associated types.
type PlanInput struct {
	TaskAssociations     []PeriodTaskType
	DocumentAssociations []PeriodDocumentType
	StudentIDs           []uuid.UUID
	ExistingTasks        []StudentTask
	ExistingDocuments    []StudentDocument
}

// Plan is the set of writes that would bring the target students into
// alignment with the period's configuration. Dry-run, apply and
// summary all derive from the same plan, so their counts agree by
// construction.
type Plan struct {
	Students        int
	TaskCreates     []TaskCreate
	TaskUpdates     []TaskUpdate
	DocumentCreates []DocumentCreate
	DocumentUpdates []DocumentUpdate
}

type pairKey struct {
	student uuid.UUID
	typ     uuid.UUID
}

// BuildPlan diffs desired state (period associations × target
// students) against the existing rows. For each association every
// target student is partitioned into "has no row" (a planned create
// with the effective due date) or "has a row" (a planned update when
// the period override differs from the stored due date, or when reset
// forces a status change). Exempted rows are diffed like any other.
func BuildPlan(in PlanInput, opts Options) Plan {
	plan := Plan{Students: len(in.StudentIDs)}

	// FindFirst semantics: when historical data holds duplicate
	// document rows for a pair, the first row wins and the rest are
	// ignored.
	existingTasks := make(map[pairKey]StudentTask, len(in.ExistingTasks))
	for _, row := range in.ExistingTasks {
		key := pairKey{row.StudentID, row.TaskTypeID}
		if _, ok := existingTasks[key]; !ok {
			existingTasks[key] = row
		}
	}
	existingDocs := make(map[pairKey]StudentDocument, len(in.ExistingDocuments))
	for _, row := range in.ExistingDocuments {
		key := pairKey{row.StudentID, row.DocumentTypeID}
		if _, ok := existingDocs[key]; !ok {
			existingDocs[key] = row
		}
	}

	for i := range in.TaskAssociations {
		assoc := &in.TaskAssociations[i]
		effective := assoc.EffectiveTaskDueDate()
		for _, studentID := range in.StudentIDs {
			row, ok := existingTasks[pairKey{studentID, assoc.TaskTypeID}]
			if !ok {
				plan.TaskCreates = append(plan.TaskCreates, TaskCreate{
					StudentID:  studentID,
					TaskTypeID: assoc.TaskTypeID,
					DueDate:    effective,
				})
				continue
			}

			dueDiffers := assoc.DueDate != nil && !timeEqual(row.DueDate, assoc.DueDate)
			needsReset := opts.resetOnUpdate() && row.NeedsReset()
			if !dueDiffers && !needsReset {
				continue
			}

			upd := TaskUpdate{Row: row, Reset: needsReset}
			switch {
			case dueDiffers:
				upd.DueDate = assoc.DueDate
				upd.SetDueDate = true
			case needsReset:
				// Reset restores the due date a fresh row would get.
				upd.DueDate = effective
				upd.SetDueDate = true
			}
			plan.TaskUpdates = append(plan.TaskUpdates, upd)
		}
	}

	for i := range in.DocumentAssociations {
		assoc := &in.DocumentAssociations[i]
		effective := assoc.EffectiveDocumentDueDate()
		for _, studentID := range in.StudentIDs {
			row, ok := existingDocs[pairKey{studentID, assoc.DocumentTypeID}]
			if !ok {
				plan.DocumentCreates = append(plan.DocumentCreates, DocumentCreate{
					StudentID:      studentID,
					DocumentTypeID: assoc.DocumentTypeID,
					DueDate:        effective,
				})
				continue
			}

			dueDiffers := assoc.DueDate != nil && !timeEqual(row.DueDate, assoc.DueDate)
			needsReset := opts.resetOnUpdate() && row.NeedsReset()
			if !dueDiffers && !needsReset {
				continue
			}

			upd := DocumentUpdate{Row: row, Reset: needsReset}
			switch {
			case dueDiffers:
				upd.DueDate = assoc.DueDate
				upd.SetDueDate = true
			case needsReset:
				upd.DueDate = effective
				upd.SetDueDate = true
			}
			plan.DocumentUpdates = append(plan.DocumentUpdates, upd)
		}
	}

	return plan
}

// timeEqual compares two optional instants. Equality is exact instant
// equality with no timezone normalization beyond what time.Time.Equal
// already does.
func timeEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
