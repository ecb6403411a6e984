package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dstone/movie-club-server/internal/api/middleware"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type MovieHandler struct {
	watchlistService *service.WatchlistService
}

func NewMovieHandler(watchlistService *service.WatchlistService) *MovieHandler {
	return &MovieHandler{watchlistService: watchlistService}
}

type WatchlistMovieResponse struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Year                 *int    `json:"year"`
	PosterURL            *string `json:"posterUrl"`
	Overview             *string `json:"overview"`
	RuntimeMinutes       *int    `json:"runtimeMinutes"`
	PickerName           string  `json:"pickerName"`
	PickerProfilePicture *string `json:"pickerProfilePicture"`
}

func (h *MovieHandler) Current(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlistService.CurrentWatchlist(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]WatchlistMovieResponse, 0, len(entries))
	for _, entry := range entries {
		resp := WatchlistMovieResponse{
			ID:             entry.Movie.ID.String(),
			Title:          entry.Movie.Title,
			Year:           entry.Movie.Year,
			PosterURL:      entry.Movie.PosterURL,
			Overview:       entry.Movie.Overview,
			RuntimeMinutes: entry.Movie.RuntimeMinutes,
			PickerName:     "Unknown",
		}
		if entry.Picker != nil {
			resp.PickerName = entry.Picker.Name
			resp.PickerProfilePicture = entry.Picker.ProfilePictureURL
		}
		out = append(out, resp)
	}

	respondJSON(w, http.StatusOK, out)
}

type HallOfFameMovieResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Year          *int     `json:"year"`
	PosterURL     *string  `json:"posterUrl"`
	AverageRating *float64 `json:"averageRating"`
}

func (h *MovieHandler) HallOfFame(w http.ResponseWriter, r *http.Request) {
	movies, err := h.watchlistService.HallOfFame(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]HallOfFameMovieResponse, 0, len(movies))
	for _, movie := range movies {
		out = append(out, HallOfFameMovieResponse{
			ID:            movie.ID.String(),
			Title:         movie.Title,
			Year:          movie.Year,
			PosterURL:     movie.PosterURL,
			AverageRating: movie.AverageRating,
		})
	}

	respondJSON(w, http.StatusOK, out)
}

type RateMovieRequest struct {
	Rating int `json:"rating"`
}

type RateMovieResponse struct {
	Success       bool    `json:"success"`
	AverageRating float64 `json:"averageRating"`
	RatingCount   int     `json:"ratingCount"`
}

func (h *MovieHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	movieID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid movie id")
		return
	}

	var req RateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	result, err := h.watchlistService.RateMovie(r.Context(), userID, movieID, req.Rating)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RateMovieResponse{
		Success:       true,
		AverageRating: result.AverageRating,
		RatingCount:   result.RatingCount,
	})
}
