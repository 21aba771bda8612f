package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/closetly/wardrobe-api/internal/model"
	"github.com/closetly/wardrobe-api/internal/repository"
	"github.com/closetly/wardrobe-api/internal/storage"
)

// ItemUsecase defines the business logic for wardrobe items. Every operation
// is scoped to the owning user; items belonging to anyone else behave as if
// they do not exist.
type ItemUsecase interface {
	CreateItem(ctx context.Context, userID string, params CreateItemParams) (*model.Item, error)
	ListItems(ctx context.Context, userID string, params repository.FilterItemsParams) ([]*model.Item, error)
	GetItem(ctx context.Context, userID, itemID string) (*model.Item, error)
	DeleteItem(ctx context.Context, userID, itemID string) error
	MarkItemWorn(ctx context.Context, userID, itemID string) (*model.Item, error)
	MarkItemClean(ctx context.Context, userID, itemID string) (*model.Item, error)
}

// CreateItemParams defines the parameters for adding an item to a wardrobe.
type CreateItemParams struct {
	Name        string
	Category    string
	SubCategory string
	Seasons     []string
	Color       string
	Warmth      int
	Image       io.Reader
}

var ErrItemNotFound = errors.New("item not found")

type itemUsecase struct {
	itemRepo repository.ItemRepository
	media    storage.MediaStore
	logger   *zerolog.Logger
}

func NewItemUsecase(
	itemRepo repository.ItemRepository,
	media storage.MediaStore,
	logger *zerolog.Logger,
) ItemUsecase {
	return &itemUsecase{
		itemRepo: itemRepo,
		media:    media,
		logger:   logger,
	}
}

// CreateItem uploads the image first and only then writes the record. A
// failed write deletes the uploaded image again so a rejected create leaves
// no visible state behind.
func (u *itemUsecase) CreateItem(
	ctx context.Context,
	userID string,
	params CreateItemParams,
) (*model.Item, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	imageURL, err := u.media.Upload(ctx, "items", params.Image)
	if err != nil {
		return nil, err
	}

	seasons := params.Seasons
	if seasons == nil {
		seasons = []string{}
	}

	item, err := u.itemRepo.CreateItem(ctx, &model.Item{
		UserID:      ownerID,
		Name:        params.Name,
		ImageURL:    imageURL,
		Category:    params.Category,
		SubCategory: params.SubCategory,
		Seasons:     seasons,
		Color:       params.Color,
		Warmth:      params.Warmth,
		Clean:       true,
	})
	if err != nil {
		// The compensation must still run when the request is being torn down.
		cleanupCtx := context.WithoutCancel(ctx)
		if delErr := u.media.Delete(cleanupCtx, imageURL); delErr != nil {
			u.logger.Error().Err(delErr).Str("image_url", imageURL).Msg("failed to delete orphaned image")
		}

		return nil, err
	}

	return item, nil
}

func (u *itemUsecase) ListItems(
	ctx context.Context,
	userID string,
	params repository.FilterItemsParams,
) ([]*model.Item, error) {
	return u.itemRepo.ListItems(ctx, userID, params)
}

func (u *itemUsecase) GetItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	return u.getOwnedItem(ctx, userID, itemID)
}

func (u *itemUsecase) DeleteItem(ctx context.Context, userID, itemID string) error {
	item, err := u.getOwnedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	deleted, err := u.itemRepo.DeleteItem(ctx, item.ID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrItemNotFound
		}

		return err
	}

	// The record is gone either way; an undeletable image is only logged.
	if deleted.ImageURL != "" {
		cleanupCtx := context.WithoutCancel(ctx)
		if err := u.media.Delete(cleanupCtx, deleted.ImageURL); err != nil {
			u.logger.Error().Err(err).Str("image_url", deleted.ImageURL).Msg("failed to delete item image")
		}
	}

	return nil
}

func (u *itemUsecase) MarkItemWorn(ctx context.Context, userID, itemID string) (*model.Item, error) {
	item, err := u.getOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	clean := false
	now := time.Now()

	updated, err := u.itemRepo.UpdateItem(ctx, item.ID.Hex(), repository.UpdateItemParams{
		Clean:      &clean,
		LastWornAt: &now,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	return updated, nil
}

func (u *itemUsecase) MarkItemClean(ctx context.Context, userID, itemID string) (*model.Item, error) {
	item, err := u.getOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	clean := true

	updated, err := u.itemRepo.UpdateItem(ctx, item.ID.Hex(), repository.UpdateItemParams{
		Clean: &clean,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	return updated, nil
}

// getOwnedItem loads an item and verifies it belongs to userID. Missing,
// malformed and foreign IDs all collapse into ErrItemNotFound.
func (u *itemUsecase) getOwnedItem(ctx context.Context, userID, itemID string) (*model.Item, error) {
	if !validObjectID(itemID) {
		return nil, ErrItemNotFound
	}

	item, err := u.itemRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	if item.UserID.Hex() != userID {
		return nil, ErrItemNotFound
	}

	return item, nil
}

func validObjectID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}
