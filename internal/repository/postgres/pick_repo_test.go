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
	"gorm.io/gorm"
)

func TestPickRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPickRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	first := testutil.NewMovieBuilder().Build(t, testDB.DB)
	second := testutil.NewMovieBuilder().Build(t, testDB.DB)

	pick := &domain.MoviePick{
		ID:        uuid.New(),
		UserID:    user.ID,
		MovieID:   first.ID,
		PickRound: 1,
		PickedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(ctx, pick))

	t.Run("one pick per user and round", func(t *testing.T) {
		duplicate := &domain.MoviePick{
			ID:        uuid.New(),
			UserID:    user.ID,
			MovieID:   second.ID,
			PickRound: 1,
			PickedAt:  time.Now(),
		}
		assert.Error(t, repo.Create(ctx, duplicate))
	})

	t.Run("next round opens a new slot", func(t *testing.T) {
		nextRound := &domain.MoviePick{
			ID:        uuid.New(),
			UserID:    user.ID,
			MovieID:   second.ID,
			PickRound: 2,
			PickedAt:  time.Now(),
		}
		assert.NoError(t, repo.Create(ctx, nextRound))
	})
}

func TestPickRepository_GetByUserAndRound(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPickRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	movie := testutil.NewMovieBuilder().WithTitle("Round Three Movie").Build(t, testDB.DB)
	testutil.CreatePick(t, testDB.DB, user.ID, movie.ID, 3)

	t.Run("found with movie preloaded", func(t *testing.T) {
		pick, err := repo.GetByUserAndRound(ctx, user.ID, 3)
		require.NoError(t, err)
		require.NotNil(t, pick.Movie)
		assert.Equal(t, "Round Three Movie", pick.Movie.Title)
	})

	t.Run("missing round", func(t *testing.T) {
		_, err := repo.GetByUserAndRound(ctx, user.ID, 4)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestPickRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPickRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	movie := testutil.NewMovieBuilder().Build(t, testDB.DB)
	pick := testutil.CreatePick(t, testDB.DB, user.ID, movie.ID, 1)

	require.NoError(t, repo.Delete(ctx, pick.ID))

	_, err := repo.GetByUserAndRound(ctx, user.ID, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The deleted slot accepts a replacement.
	assert.NoError(t, repo.Create(ctx, &domain.MoviePick{
		ID:        uuid.New(),
		UserID:    user.ID,
		MovieID:   movie.ID,
		PickRound: 1,
		PickedAt:  time.Now(),
	}))
}

func TestPickRepository_GetByUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewPickRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	early := testutil.NewMovieBuilder().Build(t, testDB.DB)
	late := testutil.NewMovieBuilder().Build(t, testDB.DB)

	testutil.CreatePick(t, testDB.DB, user.ID, early.ID, 1)
	testutil.CreatePick(t, testDB.DB, user.ID, late.ID, 2)
	testutil.CreatePick(t, testDB.DB, other.ID, early.ID, 2)

	picks, err := repo.GetByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, 2, picks[0].PickRound, "newest round first")
	assert.Equal(t, 1, picks[1].PickRound)
}
