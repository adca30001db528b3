package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/classtrack/backend/internal/domain/shared"
	"github.com/classtrack/backend/internal/domain/tracking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileRepo(t *testing.T) (*FilePeriodRepository, string) {
	path := filepath.Join(t.TempDir(), "periods.json")
	repo, err := NewFilePeriodRepository(path)
	require.NoError(t, err)
	return repo, path
}

func newTestPeriod(t *testing.T, name string) *tracking.Period {
	period, err := tracking.NewPeriod(name, nil, nil)
	require.NoError(t, err)
	return period
}

func TestFilePeriodRepository_SaveAndFind(t *testing.T) {
	t.Run("round-trips a period", func(t *testing.T) {
		repo, _ := newFileRepo(t)
		ctx := context.Background()

		period := newTestPeriod(t, "Période 1")
		require.NoError(t, repo.Save(ctx, period))

		found, err := repo.FindByID(ctx, period.ID)
		require.NoError(t, err)
		assert.Equal(t, "Période 1", found.Name)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		repo, _ := newFileRepo(t)

		_, err := repo.FindByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save updates fields in place", func(t *testing.T) {
		repo, _ := newFileRepo(t)
		ctx := context.Background()

		period := newTestPeriod(t, "Draft")
		require.NoError(t, repo.Save(ctx, period))

		require.NoError(t, period.Update("Trimestre 2", nil, nil))
		require.NoError(t, repo.Save(ctx, period))

		found, err := repo.FindByID(ctx, period.ID)
		require.NoError(t, err)
		assert.Equal(t, "Trimestre 2", found.Name)

		count, err := repo.Count(ctx, shared.Filter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("survives reopening the file", func(t *testing.T) {
		repo, path := newFileRepo(t)
		ctx := context.Background()

		period := newTestPeriod(t, "Persisted")
		require.NoError(t, repo.Save(ctx, period))

		reopened, err := NewFilePeriodRepository(path)
		require.NoError(t, err)

		found, err := reopened.FindByID(ctx, period.ID)
		require.NoError(t, err)
		assert.Equal(t, "Persisted", found.Name)
	})
}

func TestFilePeriodRepository_Associations(t *testing.T) {
	t.Run("replaces task types and keeps position order", func(t *testing.T) {
		repo, _ := newFileRepo(t)
		ctx := context.Background()

		period := newTestPeriod(t, "Période 1")
		require.NoError(t, repo.Save(ctx, period))

		due := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
		assocs := []tracking.PeriodTaskType{
			{BaseEntity: shared.NewBaseEntity(), PeriodID: period.ID, TaskTypeID: uuid.New(), Position: 1},
			{BaseEntity: shared.NewBaseEntity(), PeriodID: period.ID, TaskTypeID: uuid.New(), DueDate: &due, Position: 0},
		}
		require.NoError(t, repo.ReplaceTaskTypes(ctx, period.ID, assocs))

		found, err := repo.FindByID(ctx, period.ID)
		require.NoError(t, err)
		require.Len(t, found.TaskTypes, 2)
		assert.Equal(t, 0, found.TaskTypes[0].Position)
		assert.Equal(t, 1, found.TaskTypes[1].Position)
		require.NotNil(t, found.TaskTypes[0].DueDate)
		assert.True(t, due.Equal(*found.TaskTypes[0].DueDate))
	})

	t.Run("replace errors for unknown period", func(t *testing.T) {
		repo, _ := newFileRepo(t)

		err := repo.ReplaceDocumentTypes(context.Background(), uuid.New(), nil)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestFilePeriodRepository_FindAll(t *testing.T) {
	t.Run("filters by name search", func(t *testing.T) {
		repo, _ := newFileRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Save(ctx, newTestPeriod(t, "Trimestre 1")))
		require.NoError(t, repo.Save(ctx, newTestPeriod(t, "Trimestre 2")))
		require.NoError(t, repo.Save(ctx, newTestPeriod(t, "Semestre 1")))

		periods, err := repo.FindAll(ctx, shared.Filter{Search: "trimestre"})
		require.NoError(t, err)
		assert.Len(t, periods, 2)
	})

	t.Run("paginates sorted results", func(t *testing.T) {
		repo, _ := newFileRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.Save(ctx, newTestPeriod(t, "B")))
		require.NoError(t, repo.Save(ctx, newTestPeriod(t, "A")))
		require.NoError(t, repo.Save(ctx, newTestPeriod(t, "C")))

		periods, err := repo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, periods, 2)
		assert.Equal(t, "A", periods[0].Name)
		assert.Equal(t, "B", periods[1].Name)

		periods, err = repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, periods, 1)
		assert.Equal(t, "C", periods[0].Name)
	})
}

func TestFilePeriodRepository_Delete(t *testing.T) {
	t.Run("removes the period", func(t *testing.T) {
		repo, _ := newFileRepo(t)
		ctx := context.Background()

		period := newTestPeriod(t, "Doomed")
		require.NoError(t, repo.Save(ctx, period))

		require.NoError(t, repo.Delete(ctx, period.ID))

		_, err := repo.FindByID(ctx, period.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("errors for unknown period", func(t *testing.T) {
		repo, _ := newFileRepo(t)

		err := repo.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
