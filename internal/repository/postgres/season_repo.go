package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type seasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) *seasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) CreateWithRetirement(ctx context.Context, season *domain.PickingSeason) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.PickingSeason{}).
			Where("is_active = ?", true).
			Updates(map[string]interface{}{
				"is_active":    false,
				"completed_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		return tx.Create(season).Error
	})
}

func (r *seasonRepository) GetActive(ctx context.Context) (*domain.PickingSeason, error) {
	var season domain.PickingSeason
	err := r.db.WithContext(ctx).First(&season, "is_active = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveSeason
		}
		return nil, err
	}
	return &season, nil
}

func (r *seasonRepository) MaxSeasonNumber(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&domain.PickingSeason{}).
		Select("MAX(season_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// UpdateChecked performs the optimistic-concurrency write described in the
// repository interface. The caller's in-memory season keeps the bumped
// version on success so a follow-up write still compares against the row.
func (r *seasonRepository) UpdateChecked(ctx context.Context, season *domain.PickingSeason) error {
	result := r.db.WithContext(ctx).
		Model(&domain.PickingSeason{}).
		Where("id = ? AND version = ?", season.ID, season.Version).
		Updates(map[string]interface{}{
			"available_picker_ids": season.AvailablePickerIDs,
			"used_picker_ids":      season.UsedPickerIDs,
			"current_picker_id":    season.CurrentPickerID,
			"is_active":            season.IsActive,
			"completed_at":         season.CompletedAt,
			"version":              season.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSeasonConflict
	}

	season.Version++
	return nil
}

// ApplyReveal commits the rotation's core guarantee atomically: the
// watchlist rollover and the advanced pool either land together or not at
// all. The season write is the same compare-and-set as UpdateChecked.
func (r *seasonRepository) ApplyReveal(ctx context.Context, season *domain.PickingSeason, promoteIDs []uuid.UUID) (int, int, error) {
	var cleared, added int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Movie{}).
			Where("status = ?", domain.MovieStatusCurrent).
			Update("status", domain.MovieStatusWatched)
		if result.Error != nil {
			return result.Error
		}
		cleared = result.RowsAffected

		if len(promoteIDs) > 0 {
			result = tx.Model(&domain.Movie{}).
				Where("id IN ?", promoteIDs).
				Update("status", domain.MovieStatusCurrent)
			if result.Error != nil {
				return result.Error
			}
			added = result.RowsAffected
		}

		checked := tx.Model(&domain.PickingSeason{}).
			Where("id = ? AND version = ?", season.ID, season.Version).
			Updates(map[string]interface{}{
				"available_picker_ids": season.AvailablePickerIDs,
				"used_picker_ids":      season.UsedPickerIDs,
				"current_picker_id":    season.CurrentPickerID,
				"completed_at":         season.CompletedAt,
				"version":              season.Version + 1,
			})
		if checked.Error != nil {
			return checked.Error
		}
		if checked.RowsAffected == 0 {
			return domain.ErrSeasonConflict
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	season.Version++
	return int(cleared), int(added), nil
}
