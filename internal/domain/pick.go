package domain

import (
	"time"

	"github.com/google/uuid"
)

// MoviePick records one user's choice for one season. The composite unique
// index enforces at most one pick per (user, round); resubmission is modeled
// as withdraw followed by a fresh submit.
type MoviePick struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_picks_user_round"`
	MovieID   uuid.UUID `json:"movieId" gorm:"type:uuid;index;not null"`
	PickRound int       `json:"pickRound" gorm:"not null;uniqueIndex:idx_picks_user_round"`
	PickedAt  time.Time `json:"pickedAt" gorm:"not null"`

	// Relations
	User  *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Movie *Movie `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

type Rating struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie"`
	MovieID   uuid.UUID `json:"movieId" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_movie"`
	Rating    int       `json:"rating" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PickerStatus describes where a user stands in the active rotation.
type PickerStatus string

const (
	PickerStatusCurrent    PickerStatus = "current"
	PickerStatusNext       PickerStatus = "next"     // legacy FIFO value, not produced by the pool model
	PickerStatusUpcoming   PickerStatus = "upcoming" // legacy FIFO value, not produced by the pool model
	PickerStatusCompleted  PickerStatus = "completed"
	PickerStatusNotInQueue PickerStatus = "not_in_queue"
)
