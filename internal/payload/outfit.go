package payload

import (
	"time"

	"github.com/closetly/wardrobe-api/internal/model"
)

type CreateOutfitRequest struct {
	Date    time.Time `json:"date"    validate:"required"`
	ItemIDs []string  `json:"itemIds" validate:"required,min=1,dive,required"`
	Note    string    `json:"note"`
}

type OutfitResponse struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	ItemIDs   []string  `json:"itemIds"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewOutfitResponse(outfit *model.Outfit) OutfitResponse {
	itemIDs := make([]string, 0, len(outfit.ItemIDs))
	for _, id := range outfit.ItemIDs {
		itemIDs = append(itemIDs, id.Hex())
	}

	return OutfitResponse{
		ID:        outfit.ID.Hex(),
		Date:      outfit.Date,
		ItemIDs:   itemIDs,
		Note:      outfit.Note,
		CreatedAt: outfit.CreatedAt,
	}
}

func NewOutfitListResponse(outfits []*model.Outfit) []OutfitResponse {
	responses := make([]OutfitResponse, 0, len(outfits))
	for _, outfit := range outfits {
		responses = append(responses, NewOutfitResponse(outfit))
	}

	return responses
}
