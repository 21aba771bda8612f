package payload

import (
	"time"

	"github.com/closetly/wardrobe-api/internal/model"
)

// CreateItemRequest carries the non-file fields of the multipart item form.
// The handler fills it from the parsed form before validation.
type CreateItemRequest struct {
	Name        string   `json:"name"     validate:"required"`
	Category    string   `json:"category" validate:"required"`
	SubCategory string   `json:"subCategory"`
	Seasons     []string `json:"seasons"  validate:"omitempty,dive,required"`
	Color       string   `json:"color"    validate:"required"`
	Warmth      int      `json:"warmth"   validate:"required,gte=1,lte=10"`
}

type ItemResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ImageURL    string     `json:"imageUrl"`
	Category    string     `json:"category"`
	SubCategory string     `json:"subCategory,omitempty"`
	Seasons     []string   `json:"seasons"`
	Color       string     `json:"color"`
	Warmth      int        `json:"warmth"`
	Clean       bool       `json:"clean"`
	LastWornAt  *time.Time `json:"lastWornAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func NewItemResponse(item *model.Item) ItemResponse {
	seasons := item.Seasons
	if seasons == nil {
		seasons = []string{}
	}

	return ItemResponse{
		ID:          item.ID.Hex(),
		Name:        item.Name,
		ImageURL:    item.ImageURL,
		Category:    item.Category,
		SubCategory: item.SubCategory,
		Seasons:     seasons,
		Color:       item.Color,
		Warmth:      item.Warmth,
		Clean:       item.Clean,
		LastWornAt:  optionalTime(item.LastWornAt),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewItemListResponse always yields a JSON array, never null.
func NewItemListResponse(items []*model.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, NewItemResponse(item))
	}

	return responses
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
