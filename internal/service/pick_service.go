package service

import (
	"context"
	"errors"
	"time"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PickService handles the member side of the rotation: submitting a movie
// choice, withdrawing it before reveal, and answering "where do I stand".
type PickService struct {
	seasonRepo repository.SeasonRepository
	pickRepo   repository.PickRepository
	movieRepo  repository.MovieRepository
	userRepo   repository.UserRepository
}

func NewPickService(repos *repository.Repositories) *PickService {
	return &PickService{
		seasonRepo: repos.Season,
		pickRepo:   repos.Pick,
		movieRepo:  repos.Movie,
		userRepo:   repos.User,
	}
}

// MovieDescriptor is the catalog-resolved metadata a member submits with
// their pick.
type MovieDescriptor struct {
	TMDBID         int64
	Title          string
	Year           *int
	PosterURL      *string
	BackdropURL    *string
	Overview       *string
	RuntimeMinutes *int
}

type SubmitPickResult struct {
	Movie *domain.Movie
	Pick  *domain.MoviePick
}

// SubmitPick validates eligibility against the active season, resolves the
// movie (find by catalog id, create if absent), and records the pick. The
// member stays in the available pool; submitting is not being revealed.
func (s *PickService) SubmitPick(ctx context.Context, userID uuid.UUID, descriptor MovieDescriptor) (*SubmitPickResult, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if !season.InAvailablePool(userID) {
		return nil, domain.ErrNotYourTurn
	}

	_, err = s.pickRepo.GetByUserAndRound(ctx, userID, season.SeasonNumber)
	if err == nil {
		return nil, domain.ErrAlreadyPicked
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	movie, err := s.resolveMovie(ctx, descriptor)
	if err != nil {
		return nil, err
	}

	pick := &domain.MoviePick{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movie.ID,
		PickRound: season.SeasonNumber,
		PickedAt:  time.Now(),
	}

	if err := s.pickRepo.Create(ctx, pick); err != nil {
		return nil, err
	}

	return &SubmitPickResult{Movie: movie, Pick: pick}, nil
}

func (s *PickService) resolveMovie(ctx context.Context, descriptor MovieDescriptor) (*domain.Movie, error) {
	movie, err := s.movieRepo.GetByTMDBID(ctx, descriptor.TMDBID)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tmdbID := descriptor.TMDBID
	movie = &domain.Movie{
		ID:             uuid.New(),
		TMDBID:         &tmdbID,
		Title:          descriptor.Title,
		Year:           descriptor.Year,
		PosterURL:      descriptor.PosterURL,
		BackdropURL:    descriptor.BackdropURL,
		Overview:       descriptor.Overview,
		RuntimeMinutes: descriptor.RuntimeMinutes,
		Status:         domain.MovieStatusUnwatched,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

type WithdrawResult struct {
	MovieTitle string
}

// WithdrawPick deletes the member's current-round pick so they may submit a
// new one. Only permitted while they are still in the available pool.
func (s *PickService) WithdrawPick(ctx context.Context, userID uuid.UUID) (*WithdrawResult, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if !season.InAvailablePool(userID) {
		return nil, domain.ErrPickAlreadyRevealed
	}

	pick, err := s.pickRepo.GetByUserAndRound(ctx, userID, season.SeasonNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickNotFound
		}
		return nil, err
	}

	if err := s.pickRepo.Delete(ctx, pick.ID); err != nil {
		return nil, err
	}

	return &WithdrawResult{MovieTitle: pick.Movie.Title}, nil
}

type PickerStatusResult struct {
	Status        domain.PickerStatus
	Position      int // 1-based pool index, 0 when not applicable
	SeasonNumber  int
	CurrentPicker *domain.PickerIdentity
	MoviePick     *domain.Movie
}

// PickerStatus derives the member's standing in the active rotation without
// mutation. A recorded pick or a seat in the used pool means completed;
// a seat in the available pool means the member may act now.
func (s *PickService) PickerStatus(ctx context.Context, userID uuid.UUID) (*PickerStatusResult, error) {
	season, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSeason) {
			return &PickerStatusResult{Status: domain.PickerStatusNotInQueue}, nil
		}
		return nil, err
	}

	result := &PickerStatusResult{
		SeasonNumber: season.SeasonNumber,
	}

	if season.CurrentPickerID != nil {
		current, err := s.userRepo.GetByID(ctx, *season.CurrentPickerID)
		if err == nil {
			identity := current.Identity()
			result.CurrentPicker = &identity
		}
	}

	pick, err := s.pickRepo.GetByUserAndRound(ctx, userID, season.SeasonNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	switch {
	case pick != nil || season.InUsedPool(userID):
		result.Status = domain.PickerStatusCompleted
		if pick != nil {
			result.MoviePick = pick.Movie
		}
	case season.InAvailablePool(userID):
		result.Status = domain.PickerStatusCurrent
		result.Position = season.PoolPosition(userID)
	default:
		result.Status = domain.PickerStatusNotInQueue
	}

	return result, nil
}

// UserPicks returns the member's pick history, newest round first.
func (s *PickService) UserPicks(ctx context.Context, userID uuid.UUID) ([]*domain.MoviePick, error) {
	return s.pickRepo.GetByUser(ctx, userID)
}
