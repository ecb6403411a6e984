package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PickingSeason is the single source of truth for the rotation. At most one
// row is active at a time (enforced by a partial unique index on is_active).
// AvailablePickerIDs holds the members still eligible to pick this season;
// UsedPickerIDs is append-only and records reveal order within pool order.
type PickingSeason struct {
	ID                 uuid.UUID                       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SeasonNumber       int                             `json:"seasonNumber" gorm:"uniqueIndex;not null"`
	Version            int                             `json:"version" gorm:"not null;default:1"`
	AvailablePickerIDs datatypes.JSONSlice[uuid.UUID]  `json:"availablePickerIds" gorm:"type:jsonb;default:'[]'"`
	UsedPickerIDs      datatypes.JSONSlice[uuid.UUID]  `json:"usedPickerIds" gorm:"type:jsonb;default:'[]'"`
	CurrentPickerID    *uuid.UUID                      `json:"currentPickerId" gorm:"type:uuid"`
	IsActive           bool                            `json:"isActive" gorm:"not null;default:false"`
	CompletedAt        *time.Time                      `json:"completedAt"`
	CreatedAt          time.Time                       `json:"createdAt"`
}

// InAvailablePool reports whether the user may still pick this season.
func (s *PickingSeason) InAvailablePool(userID uuid.UUID) bool {
	for _, id := range s.AvailablePickerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// InUsedPool reports whether the user's pick has been revealed this season.
func (s *PickingSeason) InUsedPool(userID uuid.UUID) bool {
	for _, id := range s.UsedPickerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// PoolPosition returns the 1-based index of the user in the available pool,
// or 0 if absent.
func (s *PickingSeason) PoolPosition(userID uuid.UUID) int {
	for i, id := range s.AvailablePickerIDs {
		if id == userID {
			return i + 1
		}
	}
	return 0
}

// AdvancePool moves the given users from the available pool to the used pool,
// preserving pool order, and recomputes the denormalized current picker and
// completion timestamp. It returns the subset actually moved.
func (s *PickingSeason) AdvancePool(revealed []uuid.UUID, now time.Time) []uuid.UUID {
	revealedSet := make(map[uuid.UUID]bool, len(revealed))
	for _, id := range revealed {
		revealedSet[id] = true
	}

	remaining := make([]uuid.UUID, 0, len(s.AvailablePickerIDs))
	moved := make([]uuid.UUID, 0, len(revealed))
	for _, id := range s.AvailablePickerIDs {
		if revealedSet[id] {
			moved = append(moved, id)
		} else {
			remaining = append(remaining, id)
		}
	}

	s.AvailablePickerIDs = datatypes.NewJSONSlice(remaining)
	s.UsedPickerIDs = datatypes.NewJSONSlice(append([]uuid.UUID(s.UsedPickerIDs), moved...))

	if len(remaining) > 0 {
		head := remaining[0]
		s.CurrentPickerID = &head
		s.CompletedAt = nil
	} else {
		s.CurrentPickerID = nil
		s.CompletedAt = &now
	}

	return moved
}

// IsComplete reports whether every drawn picker has been revealed.
func (s *PickingSeason) IsComplete() bool {
	return len(s.AvailablePickerIDs) == 0
}
