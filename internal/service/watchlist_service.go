package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchlistService covers the watchlist reads and ratings around the
// rotation core.
type WatchlistService struct {
	movieRepo  repository.MovieRepository
	pickRepo   repository.PickRepository
	ratingRepo repository.RatingRepository
}

func NewWatchlistService(repos *repository.Repositories) *WatchlistService {
	return &WatchlistService{
		movieRepo:  repos.Movie,
		pickRepo:   repos.Pick,
		ratingRepo: repos.Rating,
	}
}

type WatchlistEntry struct {
	Movie  *domain.Movie
	Picker *domain.PickerIdentity
}

// CurrentWatchlist returns the CURRENT movies with the member who picked
// each one.
func (s *WatchlistService) CurrentWatchlist(ctx context.Context) ([]WatchlistEntry, error) {
	movies, err := s.movieRepo.GetByStatus(ctx, domain.MovieStatusCurrent)
	if err != nil {
		return nil, err
	}

	entries := make([]WatchlistEntry, 0, len(movies))
	for _, movie := range movies {
		entry := WatchlistEntry{Movie: movie}
		if picker, err := s.pickerForMovie(ctx, movie.ID); err == nil {
			entry.Picker = picker
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *WatchlistService) pickerForMovie(ctx context.Context, movieID uuid.UUID) (*domain.PickerIdentity, error) {
	picks, err := s.pickRepo.GetByMovie(ctx, movieID)
	if err != nil || len(picks) == 0 {
		return nil, err
	}
	if picks[0].User == nil {
		return nil, nil
	}
	identity := picks[0].User.Identity()
	return &identity, nil
}

type RateMovieResult struct {
	AverageRating float64
	RatingCount   int
}

// RateMovie records a 1-5 rating for a CURRENT movie and recomputes the
// stored average.
func (s *WatchlistService) RateMovie(ctx context.Context, userID, movieID uuid.UUID, value int) (*RateMovieResult, error) {
	if value < 1 || value > 5 {
		return nil, domain.ErrInvalidRating
	}

	movie, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, err
	}

	if movie.Status != domain.MovieStatusCurrent {
		return nil, domain.ErrMovieNotRatable
	}

	rating := &domain.Rating{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movieID,
		Rating:    value,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.GetByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	sum := 0
	for _, r := range ratings {
		sum += r.Rating
	}
	average := float64(sum) / float64(len(ratings))

	movie.AverageRating = &average
	movie.UpdatedAt = time.Now()
	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return nil, err
	}

	return &RateMovieResult{
		AverageRating: average,
		RatingCount:   len(ratings),
	}, nil
}

// HallOfFame returns the watched history ordered by average rating, best
// first; unrated movies sink to the bottom.
func (s *WatchlistService) HallOfFame(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.movieRepo.GetByStatus(ctx, domain.MovieStatusWatched)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(movies, func(i, j int) bool {
		ri, rj := movies[i].AverageRating, movies[j].AverageRating
		if ri == nil {
			return false
		}
		if rj == nil {
			return true
		}
		return *ri > *rj
	})

	return movies, nil
}
