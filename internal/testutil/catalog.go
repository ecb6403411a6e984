package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/dstone/movie-club-server/internal/catalog"
)

// StubCatalog is an in-memory catalog.Client for tests. Search misses
// return nil with no error, matching the real client; unknown credit
// lookups fail like an upstream error would.
type StubCatalog struct {
	mu      sync.Mutex
	results map[int64]*catalog.MovieResult
	credits map[int64]*catalog.Credits

	CreditCalls []int64
}

func NewStubCatalog() *StubCatalog {
	return &StubCatalog{
		results: make(map[int64]*catalog.MovieResult),
		credits: make(map[int64]*catalog.Credits),
	}
}

// AddMovie registers a search result and its credits.
func (s *StubCatalog) AddMovie(result *catalog.MovieResult, credits *catalog.Credits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.TMDBID] = result
	if credits != nil {
		s.credits[result.TMDBID] = credits
	}
}

func (s *StubCatalog) SearchMovie(ctx context.Context, query string, year *int) (*catalog.MovieResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, result := range s.results {
		if result.Title == query {
			return result, nil
		}
	}
	return nil, nil
}

func (s *StubCatalog) MovieCredits(ctx context.Context, tmdbID int64) (*catalog.Credits, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreditCalls = append(s.CreditCalls, tmdbID)
	credits, ok := s.credits[tmdbID]
	if !ok {
		return nil, fmt.Errorf("no credits registered for tmdb id %d", tmdbID)
	}
	return credits, nil
}
