package handlers

import (
	"net/http"

	"github.com/dstone/movie-club-server/internal/service"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Group returns the aggregate viewing stats snapshot. The snapshot is
// recomputed after each reveal, so this is a cheap read.
func (h *StatsHandler) Group(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Get(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
