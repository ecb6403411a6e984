package domain

import "errors"

// Rotation precondition errors. All are checked before any durable write.
var (
	ErrNoActiveSeason      = errors.New("no active picking season")
	ErrNoActiveUsers       = errors.New("no active users found")
	ErrNotYourTurn         = errors.New("it's not your turn to pick")
	ErrAlreadyPicked       = errors.New("you have already picked this round")
	ErrPickAlreadyRevealed = errors.New("cannot change pick after it has been revealed")
	ErrPickNotFound        = errors.New("no pick found for this season")
	ErrMovieNotFound       = errors.New("movie not found")
)

// Concurrency
var (
	ErrSeasonConflict = errors.New("season was modified concurrently")
)

// Watchlist errors
var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrMovieNotRatable = errors.New("can only rate movies in current watchlist")
)
