package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name              string    `json:"name" gorm:"uniqueIndex;not null"`
	PasswordHash      string    `json:"-" gorm:"not null"`
	IsAdmin           bool      `json:"isAdmin" gorm:"not null;default:false"`
	IsActive          bool      `json:"isActive" gorm:"not null;default:true"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PickerIdentity is the display projection of a user used in rotation
// responses.
type PickerIdentity struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
}

func (u *User) Identity() PickerIdentity {
	return PickerIdentity{
		ID:                u.ID,
		Name:              u.Name,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}
