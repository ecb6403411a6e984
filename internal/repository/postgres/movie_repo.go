package postgres

import (
	"context"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type movieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *movieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

func (r *movieRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.db.WithContext(ctx).First(&movie, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) GetByTMDBID(ctx context.Context, tmdbID int64) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.db.WithContext(ctx).First(&movie, "tmdb_id = ?", tmdbID).Error
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) GetByStatus(ctx context.Context, status domain.MovieStatus) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) GetWatchedWithCredits(ctx context.Context) ([]*domain.Movie, error) {
	var movies []*domain.Movie
	err := r.db.WithContext(ctx).
		Preload("CastMembers").
		Preload("CrewMembers", "job = ?", "Director").
		Where("status = ?", domain.MovieStatusWatched).
		Find(&movies).Error
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	return r.db.WithContext(ctx).Save(movie).Error
}

func (r *movieRepository) TransitionStatus(ctx context.Context, ids []uuid.UUID, status domain.MovieStatus) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Model(&domain.Movie{}).
		Where("id IN ?", ids).
		Update("status", status)
	return int(result.RowsAffected), result.Error
}

func (r *movieRepository) HasCredits(ctx context.Context, movieID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CastMember{}).
		Where("movie_id = ?", movieID).
		Count(&count).Error
	return count > 0, err
}

func (r *movieRepository) ReplaceCredits(ctx context.Context, movieID uuid.UUID, cast []domain.CastMember, crew []domain.CrewMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&domain.CastMember{}, "movie_id = ?", movieID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.CrewMember{}, "movie_id = ?", movieID).Error; err != nil {
			return err
		}
		if len(cast) > 0 {
			if err := tx.Create(&cast).Error; err != nil {
				return err
			}
		}
		if len(crew) > 0 {
			if err := tx.Create(&crew).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
