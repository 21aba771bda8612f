package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/closetly/wardrobe-api/internal/repository"
)

// DashboardUsecase composes the summary shown after sign-in.
type DashboardUsecase interface {
	Stats(ctx context.Context, userID string) (*DashboardStats, error)
}

// DashboardStats summarizes the signed-in user's wardrobe. IsNewUser is
// true exactly when the wardrobe holds no items at all.
type DashboardStats struct {
	Name       string
	TotalItems int64
	DirtyItems int64
	IsNewUser  bool
}

type dashboardUsecase struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
}

func NewDashboardUsecase(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

func (u *dashboardUsecase) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	total, err := u.itemRepo.CountItems(ctx, userID, repository.FilterItemsParams{})
	if err != nil {
		return nil, err
	}

	dirty := false
	dirtyCount, err := u.itemRepo.CountItems(ctx, userID, repository.FilterItemsParams{Clean: &dirty})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Name:       strings.TrimSpace(user.FirstName + " " + user.LastName),
		TotalItems: total,
		DirtyItems: dirtyCount,
		IsNewUser:  total == 0,
	}, nil
}
