package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/closetly/wardrobe-api/internal/model"
	"github.com/closetly/wardrobe-api/internal/repository"
)

// OutfitUsecase defines the business logic for dated outfits.
type OutfitUsecase interface {
	CreateOutfit(ctx context.Context, userID string, params CreateOutfitParams) (*model.Outfit, error)
	ListOutfits(ctx context.Context, userID string, params repository.FilterOutfitsParams) ([]*model.Outfit, error)
	DeleteOutfit(ctx context.Context, userID, outfitID string) error
}

// CreateOutfitParams defines the parameters for recording an outfit.
// ItemIDs keeps the order the items were picked in.
type CreateOutfitParams struct {
	Date    time.Time
	ItemIDs []string
	Note    string
}

var (
	ErrOutfitNotFound     = errors.New("outfit not found")
	ErrOutfitItemNotFound = errors.New("outfit references an unknown item")
)

type outfitUsecase struct {
	outfitRepo repository.OutfitRepository
	itemRepo   repository.ItemRepository
}

func NewOutfitUsecase(
	outfitRepo repository.OutfitRepository,
	itemRepo repository.ItemRepository,
) OutfitUsecase {
	return &outfitUsecase{
		outfitRepo: outfitRepo,
		itemRepo:   itemRepo,
	}
}

// CreateOutfit verifies every referenced item belongs to the user before
// writing anything.
func (u *outfitUsecase) CreateOutfit(
	ctx context.Context,
	userID string,
	params CreateOutfitParams,
) (*model.Outfit, error) {
	ownerID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]bson.ObjectID, 0, len(params.ItemIDs))
	for _, itemID := range params.ItemIDs {
		objectID, err := bson.ObjectIDFromHex(itemID)
		if err != nil {
			return nil, ErrOutfitItemNotFound
		}

		item, err := u.itemRepo.GetItem(ctx, itemID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrOutfitItemNotFound
			}

			return nil, err
		}

		if item.UserID != ownerID {
			return nil, ErrOutfitItemNotFound
		}

		itemIDs = append(itemIDs, objectID)
	}

	return u.outfitRepo.CreateOutfit(ctx, &model.Outfit{
		UserID:  ownerID,
		Date:    params.Date,
		ItemIDs: itemIDs,
		Note:    params.Note,
	})
}

func (u *outfitUsecase) ListOutfits(
	ctx context.Context,
	userID string,
	params repository.FilterOutfitsParams,
) ([]*model.Outfit, error) {
	return u.outfitRepo.ListOutfits(ctx, userID, params)
}

func (u *outfitUsecase) DeleteOutfit(ctx context.Context, userID, outfitID string) error {
	if !validObjectID(outfitID) {
		return ErrOutfitNotFound
	}

	outfit, err := u.outfitRepo.GetOutfit(ctx, outfitID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOutfitNotFound
		}

		return err
	}

	if outfit.UserID.Hex() != userID {
		return ErrOutfitNotFound
	}

	if _, err := u.outfitRepo.DeleteOutfit(ctx, outfitID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrOutfitNotFound
		}

		return err
	}

	return nil
}
