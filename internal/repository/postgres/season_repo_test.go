package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/repository/postgres"
	"github.com/dstone/movie-club-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newSeason(number int, available ...uuid.UUID) *domain.PickingSeason {
	season := &domain.PickingSeason{
		ID:                 uuid.New(),
		SeasonNumber:       number,
		Version:            1,
		AvailablePickerIDs: datatypes.NewJSONSlice(available),
		UsedPickerIDs:      datatypes.NewJSONSlice([]uuid.UUID{}),
		IsActive:           true,
		CreatedAt:          time.Now(),
	}
	if len(available) > 0 {
		head := available[0]
		season.CurrentPickerID = &head
	}
	return season
}

func TestSeasonRepository_CreateWithRetirement(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSeasonRepository(testDB.DB)
	ctx := context.Background()

	first := newSeason(1, uuid.New())
	require.NoError(t, repo.CreateWithRetirement(ctx, first))

	second := newSeason(2, uuid.New())
	require.NoError(t, repo.CreateWithRetirement(ctx, second))

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	var retired domain.PickingSeason
	require.NoError(t, testDB.DB.First(&retired, "id = ?", first.ID).Error)
	assert.False(t, retired.IsActive)

	var activeCount int64
	require.NoError(t, testDB.DB.Model(&domain.PickingSeason{}).Where("is_active").Count(&activeCount).Error)
	assert.EqualValues(t, 1, activeCount)
}

func TestSeasonRepository_GetActive(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSeasonRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no seasons", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := repo.GetActive(ctx)
		assert.ErrorIs(t, err, domain.ErrNoActiveSeason)
	})

	t.Run("only retired seasons", func(t *testing.T) {
		testDB.Truncate(t)

		retired := newSeason(1)
		retired.IsActive = false
		require.NoError(t, testDB.DB.Create(retired).Error)

		_, err := repo.GetActive(ctx)
		assert.ErrorIs(t, err, domain.ErrNoActiveSeason)
	})

	t.Run("round-trips the pool arrays", func(t *testing.T) {
		testDB.Truncate(t)

		a, b := uuid.New(), uuid.New()
		season := newSeason(3, a, b)
		require.NoError(t, repo.CreateWithRetirement(ctx, season))

		got, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, b}, []uuid.UUID(got.AvailablePickerIDs))
		assert.Empty(t, got.UsedPickerIDs)
		require.NotNil(t, got.CurrentPickerID)
		assert.Equal(t, a, *got.CurrentPickerID)
	})
}

func TestSeasonRepository_MaxSeasonNumber(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSeasonRepository(testDB.DB)
	ctx := context.Background()

	max, err := repo.MaxSeasonNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, max, "empty table counts from zero")

	retired := newSeason(9)
	retired.IsActive = false
	require.NoError(t, testDB.DB.Create(retired).Error)

	max, err = repo.MaxSeasonNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, max, "retired seasons still raise the floor")
}

func TestSeasonRepository_UpdateChecked(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSeasonRepository(testDB.DB)
	ctx := context.Background()

	t.Run("stale version is rejected", func(t *testing.T) {
		testDB.Truncate(t)

		season := newSeason(1, uuid.New())
		require.NoError(t, repo.CreateWithRetirement(ctx, season))

		stale := *season
		require.NoError(t, repo.UpdateChecked(ctx, season))

		err := repo.UpdateChecked(ctx, &stale)
		assert.ErrorIs(t, err, domain.ErrSeasonConflict)
	})

	t.Run("success bumps the in-memory version", func(t *testing.T) {
		testDB.Truncate(t)

		season := newSeason(1, uuid.New())
		require.NoError(t, repo.CreateWithRetirement(ctx, season))

		require.NoError(t, repo.UpdateChecked(ctx, season))
		assert.Equal(t, 2, season.Version)

		// The bumped copy can keep writing.
		require.NoError(t, repo.UpdateChecked(ctx, season))
		assert.Equal(t, 3, season.Version)
	})
}

func TestSeasonRepository_ApplyReveal(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSeasonRepository(testDB.DB)
	ctx := context.Background()

	t.Run("rollover and pool write commit together", func(t *testing.T) {
		testDB.Truncate(t)

		picker := uuid.New()
		season := newSeason(1, picker)
		require.NoError(t, repo.CreateWithRetirement(ctx, season))

		leftover := testutil.NewMovieBuilder().WithStatus(domain.MovieStatusCurrent).Build(t, testDB.DB)
		picked := testutil.NewMovieBuilder().Build(t, testDB.DB)

		season.AdvancePool([]uuid.UUID{picker}, time.Now())
		cleared, added, err := repo.ApplyReveal(ctx, season, []uuid.UUID{picked.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, cleared)
		assert.Equal(t, 1, added)

		var stored domain.Movie
		require.NoError(t, testDB.DB.First(&stored, "id = ?", leftover.ID).Error)
		assert.Equal(t, domain.MovieStatusWatched, stored.Status)
		require.NoError(t, testDB.DB.First(&stored, "id = ?", picked.ID).Error)
		assert.Equal(t, domain.MovieStatusCurrent, stored.Status)

		got, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.AvailablePickerIDs)
		assert.NotNil(t, got.CompletedAt)
	})

	t.Run("version conflict rolls the whole transaction back", func(t *testing.T) {
		testDB.Truncate(t)

		picker := uuid.New()
		season := newSeason(1, picker)
		require.NoError(t, repo.CreateWithRetirement(ctx, season))

		current := testutil.NewMovieBuilder().WithStatus(domain.MovieStatusCurrent).Build(t, testDB.DB)

		stale := *season
		require.NoError(t, repo.UpdateChecked(ctx, season))

		stale.AdvancePool([]uuid.UUID{picker}, time.Now())
		_, _, err := repo.ApplyReveal(ctx, &stale, nil)
		assert.ErrorIs(t, err, domain.ErrSeasonConflict)

		// The movie rollover must not have leaked out of the transaction.
		var stored domain.Movie
		require.NoError(t, testDB.DB.First(&stored, "id = ?", current.ID).Error)
		assert.Equal(t, domain.MovieStatusCurrent, stored.Status)
	})
}
