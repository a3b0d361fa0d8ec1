package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/aeropizza/backend/internal/stats"
)

type StatsHandler struct {
	service stats.Service
}

func NewStatsHandler(service stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/dashboard/stats", h.handleDashboardStats)
}

func (h *StatsHandler) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard stats")
		respondWithError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}
	respondWithJSON(w, http.StatusOK, dashboard)
}
