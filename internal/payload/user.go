package payload

import (
	"time"

	"github.com/closetly/wardrobe-api/internal/model"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName"  validate:"omitempty,min=1"`
	Location  *string `json:"location"`
}

// UserResponse is the public view of a user record. The password hash
// never leaves the server.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Location    string     `json:"location,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID.Hex(),
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Location:    user.Location,
		LastLoginAt: optionalTime(user.LastLoginAt),
		CreatedAt:   user.CreatedAt,
	}
}
