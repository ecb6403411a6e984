// Package catalog talks to the external movie-catalog service (TMDB) that
// resolves title searches and supplies cast/crew credits.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Client is the collaborator boundary consumed by the services; tests stub it.
type Client interface {
	SearchMovie(ctx context.Context, query string, year *int) (*MovieResult, error)
	MovieCredits(ctx context.Context, tmdbID int64) (*Credits, error)
}

type MovieResult struct {
	TMDBID       int64   `json:"id"`
	Title        string  `json:"title"`
	ReleaseDate  string  `json:"release_date"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	Overview     string  `json:"overview"`
}

// Year parses the release year out of the catalog's date string.
func (m *MovieResult) Year() *int {
	if len(m.ReleaseDate) < 4 {
		return nil
	}
	y, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return nil
	}
	return &y
}

type CastCredit struct {
	TMDBPersonID int64  `json:"id"`
	Name         string `json:"name"`
	Gender       int    `json:"gender"`
	Order        int    `json:"order"`
}

type CrewCredit struct {
	TMDBPersonID int64  `json:"id"`
	Name         string `json:"name"`
	Job          string `json:"job"`
}

// Credits carries the top-billed cast and the directors for one movie.
type Credits struct {
	Cast      []CastCredit
	Directors []CrewCredit
}

const topCastCount = 10

type tmdbClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewTMDBClient returns a Client paced at one request per interval, keeping
// reveal-time credit fan-out inside the catalog's request quota.
func NewTMDBClient(baseURL, apiKey string, interval time.Duration) Client {
	return &tmdbClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

type searchResponse struct {
	Results []MovieResult `json:"results"`
}

func (c *tmdbClient) SearchMovie(ctx context.Context, query string, year *int) (*MovieResult, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	if year != nil {
		params.Set("year", strconv.Itoa(*year))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

type creditsResponse struct {
	Cast []CastCredit `json:"cast"`
	Crew []CrewCredit `json:"crew"`
}

func (c *tmdbClient) MovieCredits(ctx context.Context, tmdbID int64) (*Credits, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var resp creditsResponse
	path := fmt.Sprintf("/movie/%d/credits", tmdbID)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	cast := resp.Cast
	if len(cast) > topCastCount {
		cast = cast[:topCastCount]
	}

	directors := make([]CrewCredit, 0)
	for _, member := range resp.Crew {
		if member.Job == "Director" {
			directors = append(directors, member)
		}
	}

	return &Credits{Cast: cast, Directors: directors}, nil
}

func (c *tmdbClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog request %s failed with status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
