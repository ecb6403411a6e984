package handlers

import (
	"net/http"

	"github.com/dstone/movie-club-server/internal/domain"
	"github.com/dstone/movie-club-server/internal/service"
	"github.com/dstone/movie-club-server/internal/websocket"
)

type SeasonHandler struct {
	seasonService *service.SeasonService
	hub           *websocket.Hub
}

func NewSeasonHandler(seasonService *service.SeasonService, hub *websocket.Hub) *SeasonHandler {
	return &SeasonHandler{
		seasonService: seasonService,
		hub:           hub,
	}
}

type PickerResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

func toPickerResponse(p domain.PickerIdentity) PickerResponse {
	return PickerResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		ProfilePictureURL: p.ProfilePictureURL,
	}
}

func toPickerResponses(pickers []domain.PickerIdentity) []PickerResponse {
	out := make([]PickerResponse, len(pickers))
	for i, p := range pickers {
		out[i] = toPickerResponse(p)
	}
	return out
}

type ResetSeasonResponse struct {
	SeasonNumber    int              `json:"seasonNumber"`
	NextPickers     []PickerResponse `json:"nextPickers"`
	TotalUsers      int              `json:"totalUsers"`
	RemainingInPool int              `json:"remainingInPool"`
}

func (h *SeasonHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.seasonService.ResetSeason(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	names := make([]string, len(result.NextPickers))
	for i, p := range result.NextPickers {
		names[i] = p.Name
	}
	h.hub.Broadcast(websocket.EventTypeSeasonReset, websocket.SeasonResetPayload{
		SeasonNumber: result.SeasonNumber,
		PickerNames:  names,
	})

	respondJSON(w, http.StatusOK, ResetSeasonResponse{
		SeasonNumber:    result.SeasonNumber,
		NextPickers:     toPickerResponses(result.NextPickers),
		TotalUsers:      result.TotalUsers,
		RemainingInPool: result.RemainingInPool,
	})
}

type RevealedPickResponse struct {
	UserName   string `json:"userName"`
	MovieTitle string `json:"movieTitle"`
	MovieYear  *int   `json:"movieYear"`
}

type RevealResponse struct {
	SeasonNumber     int                    `json:"seasonNumber"`
	RevealedPicks    []RevealedPickResponse `json:"revealedPicks"`
	MoviesCleared    int                    `json:"moviesCleared"`
	MoviesAdded      int                    `json:"moviesAdded"`
	RemainingPickers int                    `json:"remainingPickers"`
	SeasonCompleted  bool                   `json:"seasonCompleted"`
}

func (h *SeasonHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	result, err := h.seasonService.RevealPicks(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	revealed := make([]RevealedPickResponse, len(result.RevealedPicks))
	eventPicks := make([]websocket.RevealedPickPayload, len(result.RevealedPicks))
	for i, p := range result.RevealedPicks {
		revealed[i] = RevealedPickResponse{
			UserName:   p.UserName,
			MovieTitle: p.MovieTitle,
			MovieYear:  p.MovieYear,
		}
		eventPicks[i] = websocket.RevealedPickPayload{
			UserName:   p.UserName,
			MovieTitle: p.MovieTitle,
			MovieYear:  p.MovieYear,
		}
	}

	h.hub.Broadcast(websocket.EventTypePicksRevealed, websocket.PicksRevealedPayload{
		SeasonNumber:     result.SeasonNumber,
		Revealed:         eventPicks,
		RemainingPickers: result.RemainingPickers,
		SeasonCompleted:  result.SeasonCompleted,
	})

	respondJSON(w, http.StatusOK, RevealResponse{
		SeasonNumber:     result.SeasonNumber,
		RevealedPicks:    revealed,
		MoviesCleared:    result.MoviesCleared,
		MoviesAdded:      result.MoviesAdded,
		RemainingPickers: result.RemainingPickers,
		SeasonCompleted:  result.SeasonCompleted,
	})
}

type SeasonStatusResponse struct {
	HasActiveSeason  bool             `json:"hasActiveSeason"`
	SeasonNumber     int              `json:"seasonNumber,omitempty"`
	CurrentPicker    *PickerResponse  `json:"currentPicker,omitempty"`
	AvailablePickers []PickerResponse `json:"availablePickers,omitempty"`
	UsedPickers      []PickerResponse `json:"usedPickers,omitempty"`
	IsComplete       bool             `json:"isComplete"`
}

func (h *SeasonHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.seasonService.SeasonStatus(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := SeasonStatusResponse{
		HasActiveSeason: status.HasActiveSeason,
		SeasonNumber:    status.SeasonNumber,
		IsComplete:      status.IsComplete,
	}
	if status.HasActiveSeason {
		resp.AvailablePickers = toPickerResponses(status.AvailablePickers)
		resp.UsedPickers = toPickerResponses(status.UsedPickers)
		if status.CurrentPicker != nil {
			picker := toPickerResponse(*status.CurrentPicker)
			resp.CurrentPicker = &picker
		}
	}

	respondJSON(w, http.StatusOK, resp)
}
