package persistence

import (
	"context"
	"testing"
	"time"

	trackingapp "github.com/classtrack/backend/internal/application/tracking"
	"github.com/classtrack/backend/internal/domain/roster"
	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTrackingDB opens an in-memory database with the full tracking
// schema. TranslateError maps sqlite unique violations to
// gorm.ErrDuplicatedKey, the same sentinel isUniqueViolation checks
// alongside the Postgres error class.
func setupTrackingDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&roster.Student{},
		&tracking.TaskType{},
		&tracking.DocumentType{},
		&tracking.Period{},
		&tracking.PeriodTaskType{},
		&tracking.PeriodDocumentType{},
		&tracking.StudentTask{},
		&tracking.StudentDocument{},
	)
	require.NoError(t, err)

	return db
}

func boolPtr(b bool) *bool { return &b }

func TestGormStudentTaskRepository_PairConstraint(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate pair insert reports already exists", func(t *testing.T) {
		db := setupTrackingDB(t)
		repo := NewGormStudentTaskRepository(db)

		studentID := uuid.New()
		taskTypeID := uuid.New()

		require.NoError(t, repo.Create(ctx, tracking.NewStudentTask(studentID, taskTypeID, nil)))

		err := repo.Create(ctx, tracking.NewStudentTask(studentID, taskTypeID, nil))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)

		var count int64
		require.NoError(t, db.Model(&tracking.StudentTask{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("upsert refreshes due date and keeps progress", func(t *testing.T) {
		db := setupTrackingDB(t)
		repo := NewGormStudentTaskRepository(db)

		studentID := uuid.New()
		taskTypeID := uuid.New()

		existing := tracking.NewStudentTask(studentID, taskTypeID, nil)
		require.NoError(t, existing.SetStatus(tracking.TaskStatusDone))
		require.NoError(t, repo.Create(ctx, existing))

		due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		err := repo.Upsert(ctx, tracking.NewStudentTask(studentID, taskTypeID, &due), false)
		require.NoError(t, err)

		row, err := repo.FindByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, tracking.TaskStatusDone, row.Status)
		require.NotNil(t, row.DueDate)
		assert.True(t, row.DueDate.Equal(due))

		var count int64
		require.NoError(t, db.Model(&tracking.StudentTask{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("upsert with reset rewrites progress", func(t *testing.T) {
		db := setupTrackingDB(t)
		repo := NewGormStudentTaskRepository(db)

		studentID := uuid.New()
		taskTypeID := uuid.New()

		existing := tracking.NewStudentTask(studentID, taskTypeID, nil)
		require.NoError(t, existing.SetStatus(tracking.TaskStatusDone))
		existing.SetExempted(true)
		require.NoError(t, repo.Create(ctx, existing))

		due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		err := repo.Upsert(ctx, tracking.NewStudentTask(studentID, taskTypeID, &due), true)
		require.NoError(t, err)

		row, err := repo.FindByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, tracking.TaskStatusTodo, row.Status)
		assert.False(t, row.Exempted)
	})

	t.Run("upsert inserts when the pair is new", func(t *testing.T) {
		db := setupTrackingDB(t)
		repo := NewGormStudentTaskRepository(db)

		task := tracking.NewStudentTask(uuid.New(), uuid.New(), nil)
		require.NoError(t, repo.Upsert(ctx, task, false))

		row, err := repo.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, tracking.TaskStatusTodo, row.Status)
	})
}

func TestGormStudentDocumentRepository_PairConstraint(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate pair insert reports already exists", func(t *testing.T) {
		db := setupTrackingDB(t)
		repo := NewGormStudentDocumentRepository(db)

		studentID := uuid.New()
		documentTypeID := uuid.New()

		require.NoError(t, repo.Create(ctx, tracking.NewStudentDocument(studentID, documentTypeID, nil)))

		err := repo.Create(ctx, tracking.NewStudentDocument(studentID, documentTypeID, nil))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("find first resolves the live row for a pair", func(t *testing.T) {
		db := setupTrackingDB(t)
		repo := NewGormStudentDocumentRepository(db)

		studentID := uuid.New()
		documentTypeID := uuid.New()

		doc := tracking.NewStudentDocument(studentID, documentTypeID, nil)
		require.NoError(t, repo.Create(ctx, doc))

		found, err := repo.FindFirst(ctx, studentID, documentTypeID)
		require.NoError(t, err)
		assert.Equal(t, doc.ID, found.ID)

		_, err = repo.FindFirst(ctx, studentID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// TestActivationRoundTrip drives the activation service against the
// real repositories: create, idempotent re-run, due date propagation
// and reset, all against one schema.
func TestActivationRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTrackingDB(t)

	studentRepo := NewGormStudentRepository(db)
	periodRepo := NewGormPeriodRepository(db)
	taskRepo := NewGormStudentTaskRepository(db)
	docRepo := NewGormStudentDocumentRepository(db)
	svc := trackingapp.NewActivationService(periodRepo, studentRepo, taskRepo, docRepo, zap.NewNop())

	for _, name := range []string{"Martin", "Bernard", "Dubois"} {
		student, err := roster.NewStudent("Élève", name, "6A")
		require.NoError(t, err)
		require.NoError(t, studentRepo.Save(ctx, student))
	}
	other, err := roster.NewStudent("Élève", "Moreau", "6B")
	require.NoError(t, err)
	require.NoError(t, studentRepo.Save(ctx, other))

	taskType, err := tracking.NewTaskType("Carnet signé", "", nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(taskType).Error)

	docType, err := tracking.NewDocumentType("Autorisation de sortie", "", nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(docType).Error)

	period, err := tracking.NewPeriod("Trimestre 1", nil, nil)
	require.NoError(t, err)
	require.NoError(t, periodRepo.Save(ctx, period))

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, period.SetTaskTypes([]tracking.PeriodTaskType{
		{BaseEntity: shared.NewBaseEntity(), TaskTypeID: taskType.ID, DueDate: &due},
	}))
	require.NoError(t, periodRepo.ReplaceTaskTypes(ctx, period.ID, period.TaskTypes))
	require.NoError(t, period.SetDocumentTypes([]tracking.PeriodDocumentType{
		{BaseEntity: shared.NewBaseEntity(), DocumentTypeID: docType.ID},
	}))
	require.NoError(t, periodRepo.ReplaceDocumentTypes(ctx, period.ID, period.DocumentTypes))

	req := trackingapp.ActivateRequest{Classes: []string{"6A"}}

	t.Run("first run instantiates the cohort", func(t *testing.T) {
		result, err := svc.Activate(ctx, period.ID, req)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Students)
		assert.Equal(t, 3, result.CreatedTasks)
		assert.Equal(t, 0, result.UpdatedTasks)
		assert.Equal(t, 3, result.CreatedDocs)
		assert.Equal(t, 0, result.UpdatedDocs)

		var tasks []tracking.StudentTask
		require.NoError(t, db.Find(&tasks).Error)
		require.Len(t, tasks, 3)
		for _, task := range tasks {
			require.NotNil(t, task.DueDate)
			assert.True(t, task.DueDate.Equal(due))
			assert.Equal(t, tracking.TaskStatusTodo, task.Status)
		}

		var docCount int64
		require.NoError(t, db.Model(&tracking.StudentDocument{}).Count(&docCount).Error)
		assert.Equal(t, int64(3), docCount)
	})

	t.Run("re-run is a no-op", func(t *testing.T) {
		result, err := svc.Activate(ctx, period.ID, req)
		require.NoError(t, err)

		assert.Equal(t, 3, result.Students)
		assert.Equal(t, 0, result.CreatedTasks)
		assert.Equal(t, 0, result.UpdatedTasks)
		assert.Equal(t, 0, result.CreatedDocs)
		assert.Equal(t, 0, result.UpdatedDocs)
	})

	t.Run("due date change propagates to existing rows", func(t *testing.T) {
		moved := due.AddDate(0, 0, 7)
		require.NoError(t, period.SetTaskTypes([]tracking.PeriodTaskType{
			{BaseEntity: shared.NewBaseEntity(), TaskTypeID: taskType.ID, DueDate: &moved},
		}))
		require.NoError(t, periodRepo.ReplaceTaskTypes(ctx, period.ID, period.TaskTypes))

		result, err := svc.Activate(ctx, period.ID, req)
		require.NoError(t, err)

		assert.Equal(t, 0, result.CreatedTasks)
		assert.Equal(t, 3, result.UpdatedTasks)

		var tasks []tracking.StudentTask
		require.NoError(t, db.Find(&tasks).Error)
		require.Len(t, tasks, 3)
		for _, task := range tasks {
			require.NotNil(t, task.DueDate)
			assert.True(t, task.DueDate.Equal(moved))
		}
	})

	t.Run("reset run forces progress back to initial state", func(t *testing.T) {
		var done tracking.StudentTask
		require.NoError(t, db.First(&done).Error)
		require.NoError(t, done.SetStatus(tracking.TaskStatusDone))
		require.NoError(t, taskRepo.Update(ctx, &done))

		result, err := svc.Activate(ctx, period.ID, trackingapp.ActivateRequest{
			Classes: []string{"6A"},
			Options: &trackingapp.ActivateOptions{
				OnlyMissing: boolPtr(false),
				Reset:       boolPtr(true),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 0, result.CreatedTasks)
		assert.Equal(t, 1, result.UpdatedTasks)

		row, err := taskRepo.FindByID(ctx, done.ID)
		require.NoError(t, err)
		assert.Equal(t, tracking.TaskStatusTodo, row.Status)
	})

	t.Run("other classes stay untouched", func(t *testing.T) {
		rows, err := taskRepo.FindForStudents(ctx, []uuid.UUID{other.ID}, taskType.ID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}
