package repository

import (
	"context"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error)
	GetActive(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type SeasonRepository interface {
	// CreateWithRetirement deactivates any active season and creates the new
	// one inside a single transaction, preserving the single-active invariant.
	CreateWithRetirement(ctx context.Context, season *domain.PickingSeason) error
	GetActive(ctx context.Context) (*domain.PickingSeason, error)
	MaxSeasonNumber(ctx context.Context) (int, error)
	// UpdateChecked writes the season back only if the stored version still
	// matches season.Version, bumping the version on success. It returns
	// domain.ErrSeasonConflict when the compare-and-set fails.
	UpdateChecked(ctx context.Context, season *domain.PickingSeason) error
	// ApplyReveal performs the watchlist rollover (every CURRENT movie to
	// WATCHED, the promoted ids to CURRENT) and the checked season write in
	// one transaction. Returns how many movies were cleared and added.
	ApplyReveal(ctx context.Context, season *domain.PickingSeason, promoteIDs []uuid.UUID) (cleared, added int, err error)
}

type MovieRepository interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error)
	GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error)
	GetByStatus(ctx context.Context, status domain.MovieStatus) ([]*domain.Movie, error)
	GetWatchedWithCredits(ctx context.Context) ([]*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	// TransitionStatus moves every movie in ids to the given status and
	// returns how many rows changed.
	TransitionStatus(ctx context.Context, ids []uuid.UUID, status domain.MovieStatus) (int, error)
	ReplaceCredits(ctx context.Context, movieID uuid.UUID, cast []domain.CastMember, crew []domain.CrewMember) error
	HasCredits(ctx context.Context, movieID uuid.UUID) (bool, error)
}

type PickRepository interface {
	Create(ctx context.Context, pick *domain.MoviePick) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByUserAndRound(ctx context.Context, userID uuid.UUID, round int) (*domain.MoviePick, error)
	GetByRound(ctx context.Context, round int) ([]*domain.MoviePick, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.MoviePick, error)
	GetByMovie(ctx context.Context, movieID uuid.UUID) ([]*domain.MoviePick, error)
}

type RatingRepository interface {
	Upsert(ctx context.Context, rating *domain.Rating) error
	GetByMovie(ctx context.Context, movieID uuid.UUID) ([]*domain.Rating, error)
	CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error)
}

type StatsRepository interface {
	Get(ctx context.Context) (*domain.GroupStats, error)
	Save(ctx context.Context, stats *domain.GroupStats) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Season  SeasonRepository
	Movie   MovieRepository
	Pick    PickRepository
	Rating  RatingRepository
	Stats   StatsRepository
}
