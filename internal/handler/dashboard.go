package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/closetly/wardrobe-api/internal/httpx"
	"github.com/closetly/wardrobe-api/internal/payload"
	"github.com/closetly/wardrobe-api/internal/usecase"
)

// DashboardHandler serves the post-sign-in summary.
type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
	logger           *zerolog.Logger
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase, logger *zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
		logger:           logger,
	}
}

func (h *DashboardHandler) MountRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
}

func (h *DashboardHandler) stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboardUsecase.Stats(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load dashboard stats")

		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			httpx.Error(w, http.StatusNotFound, "user not found")
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	httpx.JSON(w, http.StatusOK, payload.StatsResponse{
		Name:       stats.Name,
		TotalItems: stats.TotalItems,
		DirtyItems: stats.DirtyItems,
		IsNewUser:  stats.IsNewUser,
	})
}
