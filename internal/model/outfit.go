package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Outfit represents a dated combination of wardrobe items worn together.
// ItemIDs preserves the order the items were picked in.
type Outfit struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"`
	UserID    bson.ObjectID   `bson:"user_id"`
	Date      time.Time       `bson:"date"`
	ItemIDs   []bson.ObjectID `bson:"item_ids"`
	Note      string          `bson:"note,omitempty"`
	CreatedAt time.Time       `bson:"created_at"`
	UpdatedAt time.Time       `bson:"updated_at"`
}
