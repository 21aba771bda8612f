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

// PasswordResetHandler serves the forgot/reset password flow.
type PasswordResetHandler struct {
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
	logger               *zerolog.Logger
}

func NewPasswordResetHandler(
	passwordResetUsecase usecase.PasswordResetUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		passwordResetUsecase: passwordResetUsecase,
		validator:            validator,
		logger:               logger,
	}
}

func (h *PasswordResetHandler) MountRoutes(r chi.Router) {
	r.Post("/forgot-password", h.forgotPassword)
	r.Post("/reset-password", h.resetPassword)
	r.Get("/validate-reset-token", h.validateResetToken)
}

func (h *PasswordResetHandler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	// The response is identical whether or not the address is known.
	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")
		httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	httpx.JSON(w, http.StatusOK, payload.MessageResponse{
		Message: "if the email exists, a password reset link has been sent",
	})
}

func (h *PasswordResetHandler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		h.logger.Error().Err(err).Msg("failed to reset password")
		h.respondTokenError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.MessageResponse{Message: "password has been reset"})
}

func (h *PasswordResetHandler) validateResetToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httpx.Error(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.passwordResetUsecase.ValidatePasswordResetToken(r.Context(), token); err != nil {
		h.logger.Error().Err(err).Msg("failed to validate password reset token")
		h.respondTokenError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.MessageResponse{Message: "password reset token is valid"})
}

func (h *PasswordResetHandler) respondTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrTokenNotFound):
		httpx.Error(w, http.StatusBadRequest, "password reset token not found")
	case errors.Is(err, usecase.ErrTokenAlreadyUsed):
		httpx.Error(w, http.StatusBadRequest, "password reset token has already been used")
	case errors.Is(err, usecase.ErrTokenExpired):
		httpx.Error(w, http.StatusBadRequest, "password reset token has expired")
	case errors.Is(err, usecase.ErrInvalidToken):
		httpx.Error(w, http.StatusBadRequest, "invalid password reset token")
	default:
		httpx.Error(w, http.StatusInternalServerError, "something went wrong")
	}
}
