package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type groupStatsResponse struct {
	TotalMinutesWatched       int     `json:"totalMinutesWatched"`
	TotalMoviesWatched        int     `json:"totalMoviesWatched"`
	TotalOscarNominations     int     `json:"totalOscarNominations"`
	TotalOscarWins            int     `json:"totalOscarWins"`
	MostNominationsMovieTitle *string `json:"mostNominationsMovieTitle"`
}

func TestStatsHandler_Group(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("empty snapshot before any reveal", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/stats/group"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var stats groupStatsResponse
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &stats)
		assert.Zero(t, stats.TotalMoviesWatched)
		assert.Zero(t, stats.TotalMinutesWatched)
		assert.Nil(t, stats.MostNominationsMovieTitle)
	})

	t.Run("reflects watched history after recompute", func(t *testing.T) {
		testutil.NewMovieBuilder().
			WithTitle("Ben-Hur").
			WithRuntime(212).
			WithAcademyRecord(12, 11).
			WithStatus(domain.MovieStatusWatched).
			Build(t, ts.DB.DB)
		testutil.NewMovieBuilder().
			WithTitle("Marty").
			WithRuntime(90).
			WithAcademyRecord(8, 4).
			WithStatus(domain.MovieStatusWatched).
			Build(t, ts.DB.DB)

		require.NoError(t, ts.Services.Stats.Recompute(context.Background()))

		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/stats/group"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		var stats groupStatsResponse
		testutil.AssertStatusCode(t, resp, http.StatusOK)
		testutil.AssertJSONResponse(t, resp, &stats)
		assert.Equal(t, 2, stats.TotalMoviesWatched)
		assert.Equal(t, 302, stats.TotalMinutesWatched)
		assert.Equal(t, 20, stats.TotalOscarNominations)
		assert.Equal(t, 15, stats.TotalOscarWins)
		require.NotNil(t, stats.MostNominationsMovieTitle)
		assert.Equal(t, "Ben-Hur", *stats.MostNominationsMovieTitle)
	})

	t.Run("without token", func(t *testing.T) {
		req := testutil.CreateAuthenticatedRequest(t, http.MethodGet, ts.APIURL("/stats/group"), nil, "")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}
