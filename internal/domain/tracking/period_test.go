package tracking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeriod(t *testing.T) {
	t.Run("creates period with valid fields", func(t *testing.T) {
		start := datePtr(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
		end := datePtr(time.Date(2025, 12, 19, 0, 0, 0, 0, time.UTC))

		period, err := NewPeriod("Trimestre 1", start, end)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, period.ID)
		assert.Equal(t, "Trimestre 1", period.Name)
		assert.Equal(t, start, period.StartsOn)
		assert.Equal(t, end, period.EndsOn)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewPeriod("   ", nil, nil)
		assert.Error(t, err)
	})

	t.Run("rejects end before start", func(t *testing.T) {
		start := datePtr(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
		end := datePtr(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

		_, err := NewPeriod("Trimestre 1", start, end)
		assert.Error(t, err)
	})
}

func TestPeriod_SetTaskTypes(t *testing.T) {
	period, err := NewPeriod("Trimestre 1", nil, nil)
	require.NoError(t, err)

	t.Run("assigns positions and period ID", func(t *testing.T) {
		assocs := []PeriodTaskType{newTaskAssoc(nil, nil), newTaskAssoc(nil, nil)}

		require.NoError(t, period.SetTaskTypes(assocs))

		require.Len(t, period.TaskTypes, 2)
		assert.Equal(t, 0, period.TaskTypes[0].Position)
		assert.Equal(t, 1, period.TaskTypes[1].Position)
		assert.Equal(t, period.ID, period.TaskTypes[0].PeriodID)
	})

	t.Run("rejects duplicate task types", func(t *testing.T) {
		assoc := newTaskAssoc(nil, nil)
		dup := assoc
		dup.ID = uuid.New()

		err := period.SetTaskTypes([]PeriodTaskType{assoc, dup})
		assert.Error(t, err)
	})
}

func TestPeriodTaskType_EffectiveTaskDueDate(t *testing.T) {
	override := datePtr(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	typeDefault := datePtr(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	t.Run("override wins", func(t *testing.T) {
		assoc := newTaskAssoc(override, typeDefault)
		assert.Equal(t, override, assoc.EffectiveTaskDueDate())
	})

	t.Run("falls back to type default", func(t *testing.T) {
		assoc := newTaskAssoc(nil, typeDefault)
		assert.Equal(t, typeDefault, assoc.EffectiveTaskDueDate())
	})

	t.Run("nil when neither is set", func(t *testing.T) {
		assoc := newTaskAssoc(nil, nil)
		assert.Nil(t, assoc.EffectiveTaskDueDate())
	})
}
