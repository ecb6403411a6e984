package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func poolSeason(available ...uuid.UUID) *PickingSeason {
	season := &PickingSeason{
		SeasonNumber:       1,
		AvailablePickerIDs: datatypes.NewJSONSlice(available),
		UsedPickerIDs:      datatypes.NewJSONSlice([]uuid.UUID{}),
		IsActive:           true,
	}
	if len(available) > 0 {
		head := available[0]
		season.CurrentPickerID = &head
	}
	return season
}

func TestPickingSeason_PoolMembership(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	season := poolSeason(a, b)
	season.UsedPickerIDs = datatypes.NewJSONSlice([]uuid.UUID{c})

	assert.True(t, season.InAvailablePool(a))
	assert.False(t, season.InAvailablePool(c))
	assert.True(t, season.InUsedPool(c))
	assert.False(t, season.InUsedPool(a))

	assert.Equal(t, 1, season.PoolPosition(a))
	assert.Equal(t, 2, season.PoolPosition(b))
	assert.Equal(t, 0, season.PoolPosition(c))
}

func TestPickingSeason_AdvancePool(t *testing.T) {
	now := time.Now()

	t.Run("partial advance keeps pool order", func(t *testing.T) {
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		season := poolSeason(a, b, c)

		// Reveal in a different order than the pool holds them.
		moved := season.AdvancePool([]uuid.UUID{c, a}, now)

		// Moved and appended in pool order, not reveal order.
		assert.Equal(t, []uuid.UUID{a, c}, moved)
		assert.Equal(t, []uuid.UUID{a, c}, []uuid.UUID(season.UsedPickerIDs))
		assert.Equal(t, []uuid.UUID{b}, []uuid.UUID(season.AvailablePickerIDs))
		require.NotNil(t, season.CurrentPickerID)
		assert.Equal(t, b, *season.CurrentPickerID)
		assert.Nil(t, season.CompletedAt)
		assert.False(t, season.IsComplete())
	})

	t.Run("emptying the pool completes the season", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		season := poolSeason(a, b)

		season.AdvancePool([]uuid.UUID{a, b}, now)

		assert.Empty(t, season.AvailablePickerIDs)
		assert.Nil(t, season.CurrentPickerID)
		require.NotNil(t, season.CompletedAt)
		assert.True(t, season.CompletedAt.Equal(now))
		assert.True(t, season.IsComplete())
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		a := uuid.New()
		season := poolSeason(a)

		moved := season.AdvancePool([]uuid.UUID{uuid.New()}, now)

		assert.Empty(t, moved)
		assert.Equal(t, []uuid.UUID{a}, []uuid.UUID(season.AvailablePickerIDs))
		require.NotNil(t, season.CurrentPickerID)
		assert.Equal(t, a, *season.CurrentPickerID)
	})

	t.Run("advance with no reveals keeps the head", func(t *testing.T) {
		a, b := uuid.New(), uuid.New()
		season := poolSeason(a, b)

		moved := season.AdvancePool(nil, now)

		assert.Empty(t, moved)
		assert.Equal(t, a, *season.CurrentPickerID)
		assert.Nil(t, season.CompletedAt)
	})

	t.Run("used pool grows across successive advances", func(t *testing.T) {
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		season := poolSeason(a, b, c)

		season.AdvancePool([]uuid.UUID{b}, now)
		season.AdvancePool([]uuid.UUID{a}, now)

		assert.Equal(t, []uuid.UUID{b, a}, []uuid.UUID(season.UsedPickerIDs))
		assert.Equal(t, []uuid.UUID{c}, []uuid.UUID(season.AvailablePickerIDs))
		assert.Equal(t, c, *season.CurrentPickerID)
	})
}
