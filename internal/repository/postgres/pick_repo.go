package postgres

import (
	"context"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pickRepository struct {
	db *gorm.DB
}

func NewPickRepository(db *gorm.DB) *pickRepository {
	return &pickRepository{db: db}
}

func (r *pickRepository) Create(ctx context.Context, pick *domain.MoviePick) error {
	return r.db.WithContext(ctx).Create(pick).Error
}

func (r *pickRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MoviePick{}, "id = ?", id).Error
}

func (r *pickRepository) GetByUserAndRound(ctx context.Context, userID uuid.UUID, round int) (*domain.MoviePick, error) {
	var pick domain.MoviePick
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ? AND pick_round = ?", userID, round).
		Order("picked_at DESC").
		First(&pick).Error
	if err != nil {
		return nil, err
	}
	return &pick, nil
}

func (r *pickRepository) GetByRound(ctx context.Context, round int) ([]*domain.MoviePick, error) {
	var picks []*domain.MoviePick
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Movie").
		Where("pick_round = ?", round).
		Order("picked_at").
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}

func (r *pickRepository) GetByMovie(ctx context.Context, movieID uuid.UUID) ([]*domain.MoviePick, error) {
	var picks []*domain.MoviePick
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("movie_id = ?", movieID).
		Order("picked_at DESC").
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}

func (r *pickRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.MoviePick, error) {
	var picks []*domain.MoviePick
	err := r.db.WithContext(ctx).
		Preload("Movie").
		Where("user_id = ?", userID).
		Order("pick_round DESC").
		Find(&picks).Error
	if err != nil {
		return nil, err
	}
	return picks, nil
}
