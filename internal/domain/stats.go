package domain

import (
	"time"

	"github.com/google/uuid"
)

// GroupStats is a snapshot of group-wide rollups over the watched-movie
// history, recomputed after each reveal.
type GroupStats struct {
	ID                        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TotalMinutesWatched       int       `json:"totalMinutesWatched" gorm:"not null;default:0"`
	TotalMoviesWatched        int       `json:"totalMoviesWatched" gorm:"not null;default:0"`
	TotalOscarNominations     int       `json:"totalOscarNominations" gorm:"not null;default:0"`
	TotalOscarWins            int       `json:"totalOscarWins" gorm:"not null;default:0"`
	MostNominationsMovieTitle *string   `json:"mostNominationsMovieTitle"`
	MostNominationsCount      int       `json:"mostNominationsCount" gorm:"not null;default:0"`
	MostWinsMovieTitle        *string   `json:"mostWinsMovieTitle"`
	MostWinsCount             int       `json:"mostWinsCount" gorm:"not null;default:0"`
	MostWatchedActorName      *string   `json:"mostWatchedActorName"`
	MostWatchedActorCount     int       `json:"mostWatchedActorCount" gorm:"not null;default:0"`
	MostWatchedActressName    *string   `json:"mostWatchedActressName"`
	MostWatchedActressCount   int       `json:"mostWatchedActressCount" gorm:"not null;default:0"`
	MostWatchedDirectorName   *string   `json:"mostWatchedDirectorName"`
	MostWatchedDirectorCount  int       `json:"mostWatchedDirectorCount" gorm:"not null;default:0"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}
