package service

import (
	"context"
	"errors"
	"time"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/repository"
	"gorm.io/gorm"
)

// StatsService recomputes the group-wide rollups from the full
// watched-movie history. Reveal triggers it after its core transaction.
type StatsService struct {
	movieRepo repository.MovieRepository
	statsRepo repository.StatsRepository
}

func NewStatsService(repos *repository.Repositories) *StatsService {
	return &StatsService{
		movieRepo: repos.Movie,
		statsRepo: repos.Stats,
	}
}

type personTally struct {
	name  string
	count int
}

func (s *StatsService) Recompute(ctx context.Context) error {
	movies, err := s.movieRepo.GetWatchedWithCredits(ctx)
	if err != nil {
		return err
	}

	stats := &domain.GroupStats{
		TotalMoviesWatched: len(movies),
		UpdatedAt:          time.Now(),
	}

	actorTallies := make(map[int64]*personTally)
	actressTallies := make(map[int64]*personTally)
	directorTallies := make(map[int64]*personTally)

	for _, movie := range movies {
		if movie.RuntimeMinutes != nil {
			stats.TotalMinutesWatched += *movie.RuntimeMinutes
		}
		stats.TotalOscarNominations += movie.AcademyNominations
		stats.TotalOscarWins += movie.AcademyWins

		if movie.AcademyNominations > stats.MostNominationsCount {
			title := movie.Title
			stats.MostNominationsMovieTitle = &title
			stats.MostNominationsCount = movie.AcademyNominations
		}
		if movie.AcademyWins > stats.MostWinsCount {
			title := movie.Title
			stats.MostWinsMovieTitle = &title
			stats.MostWinsCount = movie.AcademyWins
		}

		for _, cast := range movie.CastMembers {
			switch cast.Gender {
			case 2:
				bump(actorTallies, cast.TMDBPersonID, cast.Name)
			case 1:
				bump(actressTallies, cast.TMDBPersonID, cast.Name)
			}
		}
		for _, crew := range movie.CrewMembers {
			bump(directorTallies, crew.TMDBPersonID, crew.Name)
		}
	}

	stats.MostWatchedActorName, stats.MostWatchedActorCount = top(actorTallies)
	stats.MostWatchedActressName, stats.MostWatchedActressCount = top(actressTallies)
	stats.MostWatchedDirectorName, stats.MostWatchedDirectorCount = top(directorTallies)

	return s.statsRepo.Save(ctx, stats)
}

func bump(tallies map[int64]*personTally, personID int64, name string) {
	if t, ok := tallies[personID]; ok {
		t.count++
		return
	}
	tallies[personID] = &personTally{name: name, count: 1}
}

func top(tallies map[int64]*personTally) (*string, int) {
	var best *personTally
	for _, t := range tallies {
		if best == nil || t.count > best.count || (t.count == best.count && t.name < best.name) {
			best = t
		}
	}
	if best == nil {
		return nil, 0
	}
	name := best.name
	return &name, best.count
}

func (s *StatsService) Get(ctx context.Context) (*domain.GroupStats, error) {
	stats, err := s.statsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.GroupStats{}, nil
		}
		return nil, err
	}
	return stats, nil
}
