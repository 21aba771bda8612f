package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/closetly/wardrobe-api/internal/httpx"
	"github.com/closetly/wardrobe-api/internal/payload"
	"github.com/closetly/wardrobe-api/internal/repository"
	"github.com/closetly/wardrobe-api/internal/usecase"
	"github.com/closetly/wardrobe-api/internal/validation"
)

// OutfitHandler serves the dated outfit endpoints.
type OutfitHandler struct {
	outfitUsecase usecase.OutfitUsecase
	validator     *validation.Validator
	logger        *zerolog.Logger
}

func NewOutfitHandler(
	outfitUsecase usecase.OutfitUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *OutfitHandler {
	return &OutfitHandler{
		outfitUsecase: outfitUsecase,
		validator:     validator,
		logger:        logger,
	}
}

func (h *OutfitHandler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

func (h *OutfitHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req payload.CreateOutfitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	outfit, err := h.outfitUsecase.CreateOutfit(r.Context(), userID, usecase.CreateOutfitParams{
		Date:    req.Date,
		ItemIDs: req.ItemIDs,
		Note:    req.Note,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create outfit")

		switch {
		case errors.Is(err, usecase.ErrOutfitItemNotFound):
			httpx.Error(w, http.StatusBadRequest, "outfit references an unknown item")
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	httpx.JSON(w, http.StatusCreated, payload.NewOutfitResponse(outfit))
}

func (h *OutfitHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var params repository.FilterOutfitsParams

	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", map[string]string{
				"from": "from must be an RFC 3339 timestamp",
			})
			return
		}
		params.From = &parsed
	}
	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", map[string]string{
				"to": "to must be an RFC 3339 timestamp",
			})
			return
		}
		params.To = &parsed
	}

	outfits, err := h.outfitUsecase.ListOutfits(r.Context(), userID, params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list outfits")
		httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewOutfitListResponse(outfits))
}

func (h *OutfitHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	if err := h.outfitUsecase.DeleteOutfit(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.logger.Error().Err(err).Msg("failed to delete outfit")

		switch {
		case errors.Is(err, usecase.ErrOutfitNotFound):
			httpx.Error(w, http.StatusNotFound, "outfit not found")
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
