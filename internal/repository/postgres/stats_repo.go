package postgres

import (
	"context"
	"errors"

	"github.com/dstone/movie-club-server/internal/domain"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Get(ctx context.Context) (*domain.GroupStats, error) {
	var stats domain.GroupStats
	err := r.db.WithContext(ctx).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Save keeps a single snapshot row, replacing any previous one.
func (r *statsRepository) Save(ctx context.Context, stats *domain.GroupStats) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.GroupStats
		err := tx.First(&existing).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return tx.Create(stats).Error
		}

		stats.ID = existing.ID
		return tx.Save(stats).Error
	})
}
