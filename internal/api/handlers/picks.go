package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dstone/movie-club-server/internal/api/middleware"
	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/dstone/movie-club-server/internal/websocket"
)

type PickHandler struct {
	pickService *service.PickService
	authService *service.AuthService
	hub         *websocket.Hub
}

func NewPickHandler(pickService *service.PickService, authService *service.AuthService, hub *websocket.Hub) *PickHandler {
	return &PickHandler{
		pickService: pickService,
		authService: authService,
		hub:         hub,
	}
}

type SubmitPickRequest struct {
	TMDBID         int64   `json:"tmdbId"`
	Title          string  `json:"title"`
	Year           *int    `json:"year"`
	PosterURL      *string `json:"posterUrl"`
	BackdropURL    *string `json:"backdropUrl"`
	Overview       *string `json:"overview"`
	RuntimeMinutes *int    `json:"runtimeMinutes"`
}

type MovieSummaryResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Year      *int    `json:"year"`
	PosterURL *string `json:"posterUrl"`
}

type SubmitPickResponse struct {
	Success bool                 `json:"success"`
	Movie   MovieSummaryResponse `json:"movie"`
}

func (h *PickHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	var req SubmitPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	if req.TMDBID == 0 || req.Title == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "tmdbId and title are required")
		return
	}

	result, err := h.pickService.SubmitPick(r.Context(), userID, service.MovieDescriptor{
		TMDBID:         req.TMDBID,
		Title:          req.Title,
		Year:           req.Year,
		PosterURL:      req.PosterURL,
		BackdropURL:    req.BackdropURL,
		Overview:       req.Overview,
		RuntimeMinutes: req.RuntimeMinutes,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if user, err := h.authService.GetUserByID(r.Context(), userID); err == nil {
		h.hub.Broadcast(websocket.EventTypePickSubmitted, websocket.PickSubmittedPayload{
			UserName: user.Name,
		})
	}

	respondJSON(w, http.StatusOK, SubmitPickResponse{
		Success: true,
		Movie: MovieSummaryResponse{
			ID:        result.Movie.ID.String(),
			Title:     result.Movie.Title,
			Year:      result.Movie.Year,
			PosterURL: result.Movie.PosterURL,
		},
	})
}

type WithdrawResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *PickHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	result, err := h.pickService.WithdrawPick(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if user, err := h.authService.GetUserByID(r.Context(), userID); err == nil {
		h.hub.Broadcast(websocket.EventTypePickWithdrawn, websocket.PickWithdrawnPayload{
			UserName: user.Name,
		})
	}

	respondJSON(w, http.StatusOK, WithdrawResponse{
		Success: true,
		Message: "Your pick \"" + result.MovieTitle + "\" has been removed. You can now pick a new movie.",
	})
}

type PickerStatusResponse struct {
	Status        string                `json:"status"`
	Position      int                   `json:"position,omitempty"`
	SeasonNumber  int                   `json:"seasonNumber,omitempty"`
	CurrentPicker *PickerResponse       `json:"currentPicker,omitempty"`
	MoviePick     *MovieSummaryResponse `json:"moviePick,omitempty"`
}

func (h *PickHandler) Status(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	result, err := h.pickService.PickerStatus(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := PickerStatusResponse{
		Status:       string(result.Status),
		Position:     result.Position,
		SeasonNumber: result.SeasonNumber,
	}
	if result.CurrentPicker != nil {
		picker := toPickerResponse(*result.CurrentPicker)
		resp.CurrentPicker = &picker
	}
	if result.MoviePick != nil {
		resp.MoviePick = &MovieSummaryResponse{
			ID:        result.MoviePick.ID.String(),
			Title:     result.MoviePick.Title,
			Year:      result.MoviePick.Year,
			PosterURL: result.MoviePick.PosterURL,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

type UserPickResponse struct {
	PickRound int                  `json:"pickRound"`
	PickedAt  time.Time            `json:"pickedAt"`
	Movie     MovieSummaryResponse `json:"movie"`
}

func (h *PickHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}

	picks, err := h.pickService.UserPicks(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	out := make([]UserPickResponse, 0, len(picks))
	for _, pick := range picks {
		resp := UserPickResponse{
			PickRound: pick.PickRound,
			PickedAt:  pick.PickedAt,
		}
		if pick.Movie != nil {
			resp.Movie = movieSummary(pick.Movie)
		}
		out = append(out, resp)
	}

	respondJSON(w, http.StatusOK, out)
}

func movieSummary(movie *domain.Movie) MovieSummaryResponse {
	return MovieSummaryResponse{
		ID:        movie.ID.String(),
		Title:     movie.Title,
		Year:      movie.Year,
		PosterURL: movie.PosterURL,
	}
}
