package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered wardrobe owner.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	FirstName    string        `bson:"first_name"`
	LastName     string        `bson:"last_name"`
	Location     string        `bson:"location,omitempty"`
	LastLoginAt  time.Time     `bson:"last_login_at,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
