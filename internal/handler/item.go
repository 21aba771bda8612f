package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/closetly/wardrobe-api/internal/httpx"
	"github.com/closetly/wardrobe-api/internal/payload"
	"github.com/closetly/wardrobe-api/internal/repository"
	"github.com/closetly/wardrobe-api/internal/storage"
	"github.com/closetly/wardrobe-api/internal/usecase"
	"github.com/closetly/wardrobe-api/internal/validation"
)

// maxUploadSize caps the in-memory portion of the multipart item form.
const maxUploadSize = 10 << 20

// ItemHandler serves the wardrobe item endpoints. All of them require an
// authenticated request.
type ItemHandler struct {
	itemUsecase usecase.ItemUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

func NewItemHandler(
	itemUsecase usecase.ItemUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ItemHandler {
	return &ItemHandler{
		itemUsecase: itemUsecase,
		validator:   validator,
		logger:      logger,
	}
}

func (h *ItemHandler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/worn", h.markWorn)
	r.Post("/{id}/clean", h.markClean)
}

func (h *ItemHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := payload.CreateItemRequest{
		Name:        r.PostFormValue("name"),
		Category:    r.PostFormValue("category"),
		SubCategory: r.PostFormValue("subCategory"),
		Color:       r.PostFormValue("color"),
	}

	if warmth := r.PostFormValue("warmth"); warmth != "" {
		parsed, err := strconv.Atoi(warmth)
		if err != nil {
			httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", map[string]string{
				"warmth": "warmth must be a number",
			})
			return
		}
		req.Warmth = parsed
	}

	// seasons arrives as a JSON-encoded string array inside the form.
	if seasons := r.PostFormValue("seasons"); seasons != "" {
		if err := json.Unmarshal([]byte(seasons), &req.Seasons); err != nil {
			httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", map[string]string{
				"seasons": "seasons must be a JSON-encoded string array",
			})
			return
		}
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", fields)
		return
	}

	image, _, err := r.FormFile("image")
	if err != nil {
		httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", map[string]string{
			"image": "an image file is required",
		})
		return
	}
	defer image.Close()

	item, err := h.itemUsecase.CreateItem(r.Context(), userID, usecase.CreateItemParams{
		Name:        req.Name,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		Seasons:     req.Seasons,
		Color:       req.Color,
		Warmth:      req.Warmth,
		Image:       image,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create item")

		switch {
		case errors.Is(err, storage.ErrUnsupportedImageType):
			httpx.Error(w, http.StatusBadRequest, err.Error())
		default:
			httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		}

		return
	}

	httpx.JSON(w, http.StatusCreated, payload.NewItemResponse(item))
}

func (h *ItemHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	var params repository.FilterItemsParams

	if category := r.URL.Query().Get("category"); category != "" {
		params.Category = &category
	}
	if season := r.URL.Query().Get("season"); season != "" {
		params.Season = &season
	}
	if clean := r.URL.Query().Get("clean"); clean != "" {
		parsed, err := strconv.ParseBool(clean)
		if err != nil {
			httpx.FieldErrors(w, http.StatusBadRequest, "validation failed", map[string]string{
				"clean": "clean must be a boolean",
			})
			return
		}
		params.Clean = &parsed
	}

	items, err := h.itemUsecase.ListItems(r.Context(), userID, params)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list items")
		httpx.Error(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewItemListResponse(items))
}

func (h *ItemHandler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	item, err := h.itemUsecase.GetItem(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get item")
		h.respondItemError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewItemResponse(item))
}

func (h *ItemHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	if err := h.itemUsecase.DeleteItem(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		h.logger.Error().Err(err).Msg("failed to delete item")
		h.respondItemError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) markWorn(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	item, err := h.itemUsecase.MarkItemWorn(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to mark item worn")
		h.respondItemError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewItemResponse(item))
}

func (h *ItemHandler) markClean(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(w, r)
	if !ok {
		return
	}

	item, err := h.itemUsecase.MarkItemClean(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to mark item clean")
		h.respondItemError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, payload.NewItemResponse(item))
}

func (h *ItemHandler) respondItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrItemNotFound):
		httpx.Error(w, http.StatusNotFound, "item not found")
	default:
		httpx.Error(w, http.StatusInternalServerError, "something went wrong")
	}
}
