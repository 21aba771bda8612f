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

// AuthHandler serves registration and sign-in.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *AuthHandler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/google", h.googleSignIn)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	token, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to register user")

		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			httpx.Error(w, http.StatusBadRequest, "user already exists")
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	httpx.JSON(w, http.StatusCreated, payload.TokenResponse{Token: token})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to log in user")

		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			httpx.Error(w, http.StatusUnauthorized, "invalid credentials")
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	httpx.JSON(w, http.StatusOK, payload.TokenResponse{Token: token})
}

func (h *AuthHandler) googleSignIn(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleSignInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	token, err := h.authUsecase.GoogleSignIn(r.Context(), usecase.GoogleSignInParams{
		IDToken:   req.IDToken,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to sign in with google")

		switch {
		case errors.Is(err, usecase.ErrInvalidGoogleToken):
			httpx.Error(w, http.StatusUnauthorized, "invalid google token")
		case errors.Is(err, usecase.ErrGoogleEmailUnverified):
			httpx.Error(w, http.StatusUnauthorized, "google account email is not verified")
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	httpx.JSON(w, http.StatusOK, payload.TokenResponse{Token: token})
}
