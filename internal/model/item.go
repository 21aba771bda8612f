package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Item represents a single article of clothing in a user's wardrobe.
// Seasons keeps the order the client submitted it in.
type Item struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      bson.ObjectID `bson:"user_id"`
	Name        string        `bson:"name"`
	ImageURL    string        `bson:"image_url"`
	Category    string        `bson:"category"`
	SubCategory string        `bson:"sub_category,omitempty"`
	Seasons     []string      `bson:"seasons"`
	Color       string        `bson:"color"`
	Warmth      int           `bson:"warmth"`
	Clean       bool          `bson:"clean"`
	LastWornAt  time.Time     `bson:"last_worn_at,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}
