package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dstone/movie-club-server/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR [handlers] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondDomainError maps the rotation's precondition errors to a status and
// a machine-checkable code, falling back to a plain 500.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoActiveSeason):
		respondError(w, http.StatusBadRequest, "no_active_season", err.Error())
	case errors.Is(err, domain.ErrNoActiveUsers):
		respondError(w, http.StatusBadRequest, "no_active_users", err.Error())
	case errors.Is(err, domain.ErrNotYourTurn):
		respondError(w, http.StatusForbidden, "not_your_turn", err.Error())
	case errors.Is(err, domain.ErrAlreadyPicked):
		respondError(w, http.StatusConflict, "already_picked", err.Error())
	case errors.Is(err, domain.ErrPickAlreadyRevealed):
		respondError(w, http.StatusForbidden, "pick_already_revealed", err.Error())
	case errors.Is(err, domain.ErrPickNotFound):
		respondError(w, http.StatusNotFound, "pick_not_found", err.Error())
	case errors.Is(err, domain.ErrMovieNotFound):
		respondError(w, http.StatusNotFound, "movie_not_found", err.Error())
	case errors.Is(err, domain.ErrInvalidRating):
		respondError(w, http.StatusBadRequest, "invalid_rating", err.Error())
	case errors.Is(err, domain.ErrMovieNotRatable):
		respondError(w, http.StatusBadRequest, "movie_not_ratable", err.Error())
	case errors.Is(err, domain.ErrSeasonConflict):
		respondError(w, http.StatusConflict, "season_conflict", err.Error())
	default:
		log.Printf("ERROR [handlers] internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
