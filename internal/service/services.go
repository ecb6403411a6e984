package service

import (
	"github.com/dstone/movie-club-server/internal/catalog"
	"github.com/dstone/movie-club-server/internal/config"
	"github.com/dstone/movie-club-server/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Season    *SeasonService
	Pick      *PickService
	Watchlist *WatchlistService
	Stats     *StatsService
}

func NewServices(repos *repository.Repositories, catalogClient catalog.Client, cfg *config.Config) *Services {
	stats := NewStatsService(repos)
	return &Services{
		Auth:      NewAuthService(repos.User, repos.Session, cfg),
		Season:    NewSeasonService(repos, catalogClient, stats, cfg),
		Pick:      NewPickService(repos),
		Watchlist: NewWatchlistService(repos),
		Stats:     stats,
	}
}
