package service_test

import (
	"context"
	"testing"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService_CurrentWatchlist(t *testing.T) {
	testDB, services, _ := newSeasonFixture(t)
	ctx := context.Background()

	testDB.Truncate(t)

	picker, _ := testutil.NewUserBuilder().WithName("picker").Build(t, testDB.DB)
	season := testutil.NewSeasonBuilder().WithAvailable(picker.ID).Build(t, testDB.DB)

	current := testutil.NewMovieBuilder().
		WithTitle("On The List").
		WithStatus(domain.MovieStatusCurrent).
		Build(t, testDB.DB)
	testutil.NewMovieBuilder().WithTitle("Already Seen").WithStatus(domain.MovieStatusWatched).Build(t, testDB.DB)
	testutil.NewMovieBuilder().WithTitle("Never Picked").Build(t, testDB.DB)

	testutil.CreatePick(t, testDB.DB, picker.ID, current.ID, season.SeasonNumber)

	entries, err := services.Watchlist.CurrentWatchlist(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "On The List", entries[0].Movie.Title)
	require.NotNil(t, entries[0].Picker)
	assert.Equal(t, "picker", entries[0].Picker.Name)
}

func TestWatchlistService_RateMovie(t *testing.T) {
	testDB, services, _ := newSeasonFixture(t)
	ctx := context.Background()

	t.Run("rating outside 1..5", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		movie := testutil.NewMovieBuilder().WithStatus(domain.MovieStatusCurrent).Build(t, testDB.DB)

		for _, value := range []int{0, 6, -1} {
			_, err := services.Watchlist.RateMovie(ctx, user.ID, movie.ID, value)
			assert.ErrorIs(t, err, domain.ErrInvalidRating, "value %d", value)
		}
	})

	t.Run("only current movies are ratable", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		unwatched := testutil.NewMovieBuilder().Build(t, testDB.DB)

		_, err := services.Watchlist.RateMovie(ctx, user.ID, unwatched.ID, 4)
		assert.ErrorIs(t, err, domain.ErrMovieNotRatable)
	})

	t.Run("unknown movie", func(t *testing.T) {
		testDB.Truncate(t)

		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		fresh := testutil.NewMovieBuilder().Build(t, testDB.DB)
		require.NoError(t, testDB.DB.Delete(&domain.Movie{}, "id = ?", fresh.ID).Error)

		_, err := services.Watchlist.RateMovie(ctx, user.ID, fresh.ID, 3)
		assert.ErrorIs(t, err, domain.ErrMovieNotFound)
	})

	t.Run("ratings average onto the movie", func(t *testing.T) {
		testDB.Truncate(t)

		alice, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		bob, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		movie := testutil.NewMovieBuilder().WithStatus(domain.MovieStatusCurrent).Build(t, testDB.DB)

		result, err := services.Watchlist.RateMovie(ctx, alice.ID, movie.ID, 5)
		require.NoError(t, err)
		assert.Equal(t, 5.0, result.AverageRating)
		assert.Equal(t, 1, result.RatingCount)

		result, err = services.Watchlist.RateMovie(ctx, bob.ID, movie.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 3.5, result.AverageRating)
		assert.Equal(t, 2, result.RatingCount)

		// Re-rating replaces, not appends.
		result, err = services.Watchlist.RateMovie(ctx, alice.ID, movie.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 3.0, result.AverageRating)
		assert.Equal(t, 2, result.RatingCount)

		var stored domain.Movie
		require.NoError(t, testDB.DB.First(&stored, "id = ?", movie.ID).Error)
		require.NotNil(t, stored.AverageRating)
		assert.Equal(t, 3.0, *stored.AverageRating)
	})
}

func TestWatchlistService_HallOfFame(t *testing.T) {
	testDB, services, _ := newSeasonFixture(t)
	ctx := context.Background()

	testDB.Truncate(t)

	rate := func(movie *domain.Movie, value float64) {
		require.NoError(t, testDB.DB.Model(movie).Update("average_rating", value).Error)
	}

	low := testutil.NewMovieBuilder().WithTitle("Low").WithStatus(domain.MovieStatusWatched).Build(t, testDB.DB)
	high := testutil.NewMovieBuilder().WithTitle("High").WithStatus(domain.MovieStatusWatched).Build(t, testDB.DB)
	testutil.NewMovieBuilder().WithTitle("Unrated").WithStatus(domain.MovieStatusWatched).Build(t, testDB.DB)
	testutil.NewMovieBuilder().WithTitle("Still Current").WithStatus(domain.MovieStatusCurrent).Build(t, testDB.DB)
	rate(low, 2.5)
	rate(high, 4.8)

	movies, err := services.Watchlist.HallOfFame(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, "High", movies[0].Title)
	assert.Equal(t, "Low", movies[1].Title)
	assert.Equal(t, "Unrated", movies[2].Title)
}
