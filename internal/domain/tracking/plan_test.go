package tracking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(t time.Time) *time.Time {
	return &t
}

func newTaskAssoc(dueDate, typeDefault *time.Time) PeriodTaskType {
	taskType := TaskType{Name: "Signed logbook", DefaultDueDate: typeDefault}
	taskType.ID = uuid.New()
	assoc := PeriodTaskType{
		TaskTypeID: taskType.ID,
		DueDate:    dueDate,
		TaskType:   taskType,
	}
	assoc.ID = uuid.New()
	return assoc
}

func newDocAssoc(dueDate, typeDefault *time.Time) PeriodDocumentType {
	docType := DocumentType{Name: "Insurance certificate", DefaultDueDate: typeDefault}
	docType.ID = uuid.New()
	assoc := PeriodDocumentType{
		DocumentTypeID: docType.ID,
		DueDate:        dueDate,
		DocumentType:   docType,
	}
	assoc.ID = uuid.New()
	return assoc
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.DryRun)
	assert.True(t, opts.OnlyMissing)
	assert.False(t, opts.Reset)
}

func TestBuildPlan_CreatesForMissingRows(t *testing.T) {
	taskAssoc := newTaskAssoc(nil, nil)
	docAssoc := newDocAssoc(nil, nil)
	students := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	plan := BuildPlan(PlanInput{
		TaskAssociations:     []PeriodTaskType{taskAssoc},
		DocumentAssociations: []PeriodDocumentType{docAssoc},
		StudentIDs:           students,
	}, DefaultOptions())

	assert.Equal(t, 3, plan.Students)
	assert.Len(t, plan.TaskCreates, 3)
	assert.Len(t, plan.DocumentCreates, 3)
	assert.Empty(t, plan.TaskUpdates)
	assert.Empty(t, plan.DocumentUpdates)

	for i, create := range plan.TaskCreates {
		assert.Equal(t, students[i], create.StudentID)
		assert.Equal(t, taskAssoc.TaskTypeID, create.TaskTypeID)
		assert.Nil(t, create.DueDate)
	}
}

func TestBuildPlan_CreateDueDatePrecedence(t *testing.T) {
	override := datePtr(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	typeDefault := datePtr(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	student := uuid.New()

	t.Run("period override wins over type default", func(t *testing.T) {
		assoc := newTaskAssoc(override, typeDefault)
		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
		}, DefaultOptions())

		require.Len(t, plan.TaskCreates, 1)
		assert.Equal(t, override, plan.TaskCreates[0].DueDate)
	})

	t.Run("type default applies without an override", func(t *testing.T) {
		assoc := newTaskAssoc(nil, typeDefault)
		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
		}, DefaultOptions())

		require.Len(t, plan.TaskCreates, 1)
		assert.Equal(t, typeDefault, plan.TaskCreates[0].DueDate)
	})
}

func TestBuildPlan_Idempotence(t *testing.T) {
	override := datePtr(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	taskAssoc := newTaskAssoc(override, nil)
	docAssoc := newDocAssoc(override, nil)
	students := []uuid.UUID{uuid.New(), uuid.New()}

	input := PlanInput{
		TaskAssociations:     []PeriodTaskType{taskAssoc},
		DocumentAssociations: []PeriodDocumentType{docAssoc},
		StudentIDs:           students,
	}

	first := BuildPlan(input, DefaultOptions())
	require.Len(t, first.TaskCreates, 2)
	require.Len(t, first.DocumentCreates, 2)

	// Simulate applying the creates and diff again.
	for _, create := range first.TaskCreates {
		input.ExistingTasks = append(input.ExistingTasks, *NewStudentTask(create.StudentID, create.TaskTypeID, create.DueDate))
	}
	for _, create := range first.DocumentCreates {
		input.ExistingDocuments = append(input.ExistingDocuments, *NewStudentDocument(create.StudentID, create.DocumentTypeID, create.DueDate))
	}

	second := BuildPlan(input, DefaultOptions())
	assert.Empty(t, second.TaskCreates)
	assert.Empty(t, second.TaskUpdates)
	assert.Empty(t, second.DocumentCreates)
	assert.Empty(t, second.DocumentUpdates)
}

func TestBuildPlan_DueDateUpdates(t *testing.T) {
	override := datePtr(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	student := uuid.New()

	t.Run("override differing from stored due date plans an update", func(t *testing.T) {
		assoc := newTaskAssoc(override, nil)
		stored := datePtr(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC))
		existing := *NewStudentTask(student, assoc.TaskTypeID, stored)

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, DefaultOptions())

		assert.Empty(t, plan.TaskCreates)
		require.Len(t, plan.TaskUpdates, 1)
		upd := plan.TaskUpdates[0]
		assert.True(t, upd.SetDueDate)
		assert.Equal(t, override, upd.DueDate)
		assert.False(t, upd.Reset)
	})

	t.Run("row with nil due date gets the override", func(t *testing.T) {
		assoc := newTaskAssoc(override, nil)
		existing := *NewStudentTask(student, assoc.TaskTypeID, nil)

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, DefaultOptions())

		require.Len(t, plan.TaskUpdates, 1)
		assert.Equal(t, override, plan.TaskUpdates[0].DueDate)
	})

	t.Run("matching override leaves the row untouched", func(t *testing.T) {
		assoc := newTaskAssoc(override, nil)
		sameInstant := override.In(time.FixedZone("UTC+2", 2*3600))
		existing := *NewStudentTask(student, assoc.TaskTypeID, &sameInstant)

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, DefaultOptions())

		assert.Empty(t, plan.TaskUpdates)
	})

	t.Run("nil override never refreshes stored due dates", func(t *testing.T) {
		assoc := newTaskAssoc(nil, datePtr(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)))
		stored := datePtr(time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC))
		existing := *NewStudentTask(student, assoc.TaskTypeID, stored)

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, DefaultOptions())

		assert.Empty(t, plan.TaskUpdates)
	})
}

func TestBuildPlan_ResetSemantics(t *testing.T) {
	student := uuid.New()

	t.Run("reset with upsert mode plans update for done task", func(t *testing.T) {
		assoc := newTaskAssoc(nil, nil)
		existing := *NewStudentTask(student, assoc.TaskTypeID, nil)
		existing.Status = TaskStatusDone

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, Options{OnlyMissing: false, Reset: true})

		require.Len(t, plan.TaskUpdates, 1)
		assert.True(t, plan.TaskUpdates[0].Reset)
	})

	t.Run("reset without upsert mode leaves found rows alone", func(t *testing.T) {
		assoc := newTaskAssoc(nil, nil)
		existing := *NewStudentTask(student, assoc.TaskTypeID, nil)
		existing.Status = TaskStatusDone

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, Options{OnlyMissing: true, Reset: true})

		assert.Empty(t, plan.TaskUpdates)
	})

	t.Run("no reset leaves done status untouched", func(t *testing.T) {
		assoc := newTaskAssoc(nil, nil)
		existing := *NewStudentTask(student, assoc.TaskTypeID, nil)
		existing.Status = TaskStatusDone

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, Options{OnlyMissing: false, Reset: false})

		assert.Empty(t, plan.TaskUpdates)
	})

	t.Run("reset plans update for submitted document", func(t *testing.T) {
		assoc := newDocAssoc(nil, nil)
		existing := *NewStudentDocument(student, assoc.DocumentTypeID, nil)
		existing.Submit(time.Now())

		plan := BuildPlan(PlanInput{
			DocumentAssociations: []PeriodDocumentType{assoc},
			StudentIDs:           []uuid.UUID{student},
			ExistingDocuments:    []StudentDocument{existing},
		}, Options{OnlyMissing: false, Reset: true})

		require.Len(t, plan.DocumentUpdates, 1)
		assert.True(t, plan.DocumentUpdates[0].Reset)
	})

	t.Run("reset on pristine row is a no-op", func(t *testing.T) {
		assoc := newTaskAssoc(nil, nil)
		existing := *NewStudentTask(student, assoc.TaskTypeID, nil)

		plan := BuildPlan(PlanInput{
			TaskAssociations: []PeriodTaskType{assoc},
			StudentIDs:       []uuid.UUID{student},
			ExistingTasks:    []StudentTask{existing},
		}, Options{OnlyMissing: false, Reset: true})

		assert.Empty(t, plan.TaskUpdates)
	})
}

func TestBuildPlan_ExemptionNonInterference(t *testing.T) {
	override := datePtr(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	assoc := newTaskAssoc(override, nil)
	student := uuid.New()

	existing := *NewStudentTask(student, assoc.TaskTypeID, nil)
	existing.SetExempted(true)

	plan := BuildPlan(PlanInput{
		TaskAssociations: []PeriodTaskType{assoc},
		StudentIDs:       []uuid.UUID{student},
		ExistingTasks:    []StudentTask{existing},
	}, DefaultOptions())

	// Exempted rows are diffed like any other.
	require.Len(t, plan.TaskUpdates, 1)
	assert.True(t, plan.TaskUpdates[0].SetDueDate)
}

func TestBuildPlan_ScopedToTargetStudents(t *testing.T) {
	assoc := newTaskAssoc(nil, nil)
	inScope := uuid.New()
	outOfScope := uuid.New()

	// An existing row for a student outside the target set must not
	// leak into the plan.
	stray := *NewStudentTask(outOfScope, assoc.TaskTypeID, nil)
	stray.Status = TaskStatusDone

	plan := BuildPlan(PlanInput{
		TaskAssociations: []PeriodTaskType{assoc},
		StudentIDs:       []uuid.UUID{inScope},
		ExistingTasks:    []StudentTask{stray},
	}, Options{OnlyMissing: false, Reset: true})

	require.Len(t, plan.TaskCreates, 1)
	assert.Equal(t, inScope, plan.TaskCreates[0].StudentID)
	assert.Empty(t, plan.TaskUpdates)
}

func TestBuildPlan_DuplicateDocumentRowsFirstWins(t *testing.T) {
	assoc := newDocAssoc(datePtr(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)), nil)
	student := uuid.New()

	first := *NewStudentDocument(student, assoc.DocumentTypeID, assoc.DueDate)
	second := *NewStudentDocument(student, assoc.DocumentTypeID, nil)

	plan := BuildPlan(PlanInput{
		DocumentAssociations: []PeriodDocumentType{assoc},
		StudentIDs:           []uuid.UUID{student},
		ExistingDocuments:    []StudentDocument{first, second},
	}, DefaultOptions())

	// The first row already matches; the duplicate must not force a
	// create or an update.
	assert.Empty(t, plan.DocumentCreates)
	assert.Empty(t, plan.DocumentUpdates)
}

func TestBuildPlan_MultipleAssociations(t *testing.T) {
	taskA := newTaskAssoc(nil, nil)
	taskB := newTaskAssoc(datePtr(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)), nil)
	students := []uuid.UUID{uuid.New(), uuid.New()}

	// One student already has a row for taskA.
	existing := *NewStudentTask(students[0], taskA.TaskTypeID, nil)

	plan := BuildPlan(PlanInput{
		TaskAssociations: []PeriodTaskType{taskA, taskB},
		StudentIDs:       students,
		ExistingTasks:    []StudentTask{existing},
	}, DefaultOptions())

	assert.Len(t, plan.TaskCreates, 3)
	assert.Empty(t, plan.TaskUpdates)
}
