package postgres

import (
	"context"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *ratingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
}

func (r *ratingRepository) GetByMovie(ctx context.Context, movieID uuid.UUID) ([]*domain.Rating, error) {
	var ratings []*domain.Rating
	err := r.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) CountByMovie(ctx context.Context, movieID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Rating{}).
		Where("movie_id = ?", movieID).
		Count(&count).Error
	return count, err
}
