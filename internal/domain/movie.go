package domain

import (
	"time"

	"github.com/google/uuid"
)

type MovieStatus string

const (
	MovieStatusUnwatched MovieStatus = "UNWATCHED"
	MovieStatusCurrent   MovieStatus = "CURRENT"
	MovieStatusWatched   MovieStatus = "WATCHED"
)

type Movie struct {
	ID                 uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TMDBID             *int64      `json:"tmdbId" gorm:"uniqueIndex"`
	Title              string      `json:"title" gorm:"not null"`
	Year               *int        `json:"year"`
	PosterURL          *string     `json:"posterUrl"`
	BackdropURL        *string     `json:"backdropUrl"`
	Overview           *string     `json:"overview"`
	RuntimeMinutes     *int        `json:"runtimeMinutes"`
	AcademyNominations int         `json:"academyNominations" gorm:"not null;default:0"`
	AcademyWins        int         `json:"academyWins" gorm:"not null;default:0"`
	Status             MovieStatus `json:"status" gorm:"not null;default:'UNWATCHED'"`
	AverageRating      *float64    `json:"averageRating"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`

	// Relations
	CastMembers []CastMember `json:"castMembers,omitempty" gorm:"foreignKey:MovieID"`
	CrewMembers []CrewMember `json:"crewMembers,omitempty" gorm:"foreignKey:MovieID"`
}

type CastMember struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MovieID      uuid.UUID `json:"movieId" gorm:"type:uuid;index;not null"`
	TMDBPersonID int64     `json:"tmdbPersonId" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Gender       int       `json:"gender" gorm:"not null;default:0"` // 0=unknown, 1=female, 2=male
	CastOrder    int       `json:"castOrder" gorm:"not null"`
}

type CrewMember struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MovieID      uuid.UUID `json:"movieId" gorm:"type:uuid;index;not null"`
	TMDBPersonID int64     `json:"tmdbPersonId" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Job          string    `json:"job" gorm:"not null"`
}
