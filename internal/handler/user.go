package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/closetly/wardrobe-api/internal/httpx"
	"github.com/closetly/wardrobe-api/internal/payload"
	"github.com/closetly/wardrobe-api/internal/usecase"
	"github.com/closetly/wardrobe-api/internal/validation"
)

// UserHandler serves the signed-in user's profile.
type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewUserHandler(
	userUsecase usecase.UserUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *UserHandler) MountRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Patch("/me", h.updateMe)
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	user, err := h.userUsecase.GetProfile(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load profile")
		h.respondUserError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *UserHandler) updateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var req payload.UpdateProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	user, err := h.userUsecase.UpdateProfile(r.Context(), userID, usecase.UpdateProfileParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  req.Location,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to update profile")
		h.respondUserError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *UserHandler) respondUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		httpx.Error(w, http.StatusNotFound, "user not found")
	default:
		httpx.Error(w, http.StatusInternalServerError, "something went wrong")
	}
}
