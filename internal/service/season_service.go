package service

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/dstone/movie-club-server/internal/catalog"
	"github.com/dstone/movie-club-server/internal/config"
	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeasonService owns the admin side of the rotation: drawing a new picker
// batch, revealing a round's picks, and projecting season state.
type SeasonService struct {
	seasonRepo repository.SeasonRepository
	userRepo   repository.UserRepository
	pickRepo   repository.PickRepository
	movieRepo  repository.MovieRepository
	catalog    catalog.Client
	stats      *StatsService
	poolSize   int
}

func NewSeasonService(
	repos *repository.Repositories,
	catalogClient catalog.Client,
	stats *StatsService,
	cfg *config.Config,
) *SeasonService {
	return &SeasonService{
		seasonRepo: repos.Season,
		userRepo:   repos.User,
		pickRepo:   repos.Pick,
		movieRepo:  repos.Movie,
		catalog:    catalogClient,
		stats:      stats,
		poolSize:   cfg.PickerPoolSize,
	}
}

// DrawPickers returns an unbiased random permutation of ids, taking the
// first n as the new batch. Fisher-Yates via rand.Shuffle.
func DrawPickers(ids []uuid.UUID, n int) (batch, rest []uuid.UUID) {
	shuffled := make([]uuid.UUID, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n], shuffled[n:]
}

type SeasonResetResult struct {
	SeasonNumber    int
	NextPickers     []domain.PickerIdentity
	TotalUsers      int
	RemainingInPool int
}

func (s *SeasonService) ResetSeason(ctx context.Context) (*SeasonResetResult, error) {
	activeUsers, err := s.userRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(activeUsers) == 0 {
		return nil, domain.ErrNoActiveUsers
	}

	ids := make([]uuid.UUID, len(activeUsers))
	usersByID := make(map[uuid.UUID]*domain.User, len(activeUsers))
	for i, u := range activeUsers {
		ids[i] = u.ID
		usersByID[u.ID] = u
	}

	batch, rest := DrawPickers(ids, s.poolSize)

	maxNumber, err := s.seasonRepo.MaxSeasonNumber(ctx)
	if err != nil {
		return nil, err
	}

	head := batch[0]
	season := &domain.PickingSeason{
		ID:                 uuid.New(),
		SeasonNumber:       maxNumber + 1,
		Version:            1,
		AvailablePickerIDs: datatypes.NewJSONSlice(batch),
		UsedPickerIDs:      datatypes.NewJSONSlice([]uuid.UUID{}),
		CurrentPickerID:    &head,
		IsActive:           true,
		CreatedAt:          time.Now(),
	}

	if err := s.seasonRepo.CreateWithRetirement(ctx, season); err != nil {
		return nil, err
	}

	pickers := make([]domain.PickerIdentity, len(batch))
	for i, id := range batch {
		pickers[i] = usersByID[id].Identity()
	}

	return &SeasonResetResult{
		SeasonNumber:    season.SeasonNumber,
		NextPickers:     pickers,
		TotalUsers:      len(activeUsers),
		RemainingInPool: len(rest),
	}, nil
}

type RevealedPick struct {
	UserName   string
	MovieTitle string
	MovieYear  *int
}

type RevealResult struct {
	SeasonNumber     int
	RevealedPicks    []RevealedPick
	MoviesCleared    int
	MoviesAdded      int
	RemainingPickers int
	SeasonCompleted  bool
}

// RevealPicks closes out the round: moves everyone with a recorded pick from
// the available pool to the used pool and rolls the watchlist over. The pool
// update and the rollover commit atomically; credit enrichment and the stats
// recompute run afterwards, best-effort.
func (s *SeasonService) RevealPicks(ctx context.Context) (*RevealResult, error) {
	for attempt := 0; ; attempt++ {
		result, err := s.revealOnce(ctx)
		if errors.Is(err, domain.ErrSeasonConflict) && attempt == 0 {
			continue
		}
		return result, err
	}
}

func (s *SeasonService) revealOnce(ctx context.Context) (*RevealResult, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	var revealed []uuid.UUID
	var promoteIDs []uuid.UUID
	var revealedPicks []RevealedPick
	for _, userID := range season.AvailablePickerIDs {
		pick, err := s.pickRepo.GetByUserAndRound(ctx, userID, season.SeasonNumber)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		revealed = append(revealed, userID)
		promoteIDs = append(promoteIDs, pick.MovieID)

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		revealedPicks = append(revealedPicks, RevealedPick{
			UserName:   user.Name,
			MovieTitle: pick.Movie.Title,
			MovieYear:  pick.Movie.Year,
		})
	}

	watchedIDs, err := s.currentWatchlistIDs(ctx)
	if err != nil {
		return nil, err
	}

	season.AdvancePool(revealed, time.Now())

	cleared, added, err := s.seasonRepo.ApplyReveal(ctx, season, promoteIDs)
	if err != nil {
		return nil, err
	}

	// Core transaction committed; everything below is best-effort.
	s.enrichCredits(ctx, watchedIDs)

	if err := s.stats.Recompute(ctx); err != nil {
		log.Printf("ERROR [SeasonService.RevealPicks] stats recompute failed: %v", err)
	}

	return &RevealResult{
		SeasonNumber:     season.SeasonNumber,
		RevealedPicks:    revealedPicks,
		MoviesCleared:    cleared,
		MoviesAdded:      added,
		RemainingPickers: len(season.AvailablePickerIDs),
		SeasonCompleted:  season.IsComplete(),
	}, nil
}

func (s *SeasonService) currentWatchlistIDs(ctx context.Context) ([]uuid.UUID, error) {
	current, err := s.movieRepo.GetByStatus(ctx, domain.MovieStatusCurrent)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(current))
	for i, m := range current {
		ids[i] = m.ID
	}
	return ids, nil
}

// enrichCredits fetches top cast and directors for movies that just became
// WATCHED and have none persisted. Per-movie failures are logged and
// skipped; the catalog client paces its own calls.
func (s *SeasonService) enrichCredits(ctx context.Context, movieIDs []uuid.UUID) {
	for _, id := range movieIDs {
		movie, err := s.movieRepo.GetByID(ctx, id)
		if err != nil {
			log.Printf("ERROR [SeasonService.enrichCredits] load movie %s: %v", id, err)
			continue
		}
		if movie.TMDBID == nil {
			continue
		}

		has, err := s.movieRepo.HasCredits(ctx, id)
		if err != nil || has {
			continue
		}

		credits, err := s.catalog.MovieCredits(ctx, *movie.TMDBID)
		if err != nil {
			log.Printf("ERROR [SeasonService.enrichCredits] fetch credits for %q: %v", movie.Title, err)
			continue
		}

		cast := make([]domain.CastMember, len(credits.Cast))
		for i, c := range credits.Cast {
			cast[i] = domain.CastMember{
				ID:           uuid.New(),
				MovieID:      id,
				TMDBPersonID: c.TMDBPersonID,
				Name:         c.Name,
				Gender:       c.Gender,
				CastOrder:    c.Order,
			}
		}
		crew := make([]domain.CrewMember, len(credits.Directors))
		for i, c := range credits.Directors {
			crew[i] = domain.CrewMember{
				ID:           uuid.New(),
				MovieID:      id,
				TMDBPersonID: c.TMDBPersonID,
				Name:         c.Name,
				Job:          c.Job,
			}
		}

		if err := s.movieRepo.ReplaceCredits(ctx, id, cast, crew); err != nil {
			log.Printf("ERROR [SeasonService.enrichCredits] persist credits for %q: %v", movie.Title, err)
		}
	}
}

type SeasonStatus struct {
	HasActiveSeason  bool
	SeasonNumber     int
	CurrentPicker    *domain.PickerIdentity
	AvailablePickers []domain.PickerIdentity
	UsedPickers      []domain.PickerIdentity
	IsComplete       bool
}

func (s *SeasonService) SeasonStatus(ctx context.Context) (*SeasonStatus, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSeason) {
			return &SeasonStatus{HasActiveSeason: false}, nil
		}
		return nil, err
	}

	allIDs := append([]uuid.UUID{}, season.AvailablePickerIDs...)
	allIDs = append(allIDs, season.UsedPickerIDs...)
	usersByID, err := s.userRepo.GetByIDs(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	identities := func(ids []uuid.UUID) []domain.PickerIdentity {
		out := make([]domain.PickerIdentity, 0, len(ids))
		for _, id := range ids {
			if u, ok := usersByID[id]; ok {
				out = append(out, u.Identity())
			}
		}
		return out
	}

	status := &SeasonStatus{
		HasActiveSeason:  true,
		SeasonNumber:     season.SeasonNumber,
		AvailablePickers: identities(season.AvailablePickerIDs),
		UsedPickers:      identities(season.UsedPickerIDs),
		IsComplete:       season.IsComplete(),
	}

	if season.CurrentPickerID != nil {
		if u, ok := usersByID[*season.CurrentPickerID]; ok {
			identity := u.Identity()
			status.CurrentPicker = &identity
		}
	}

	return status, nil
}
