package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestGetProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "Ada", "Lovelace")

	u := NewUserUsecase(userRepo)

	profile, err := u.GetProfile(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, user.Email, profile.Email)
	assert.Equal(t, "Ada", profile.FirstName)
}

func TestGetProfile_UnknownUser(t *testing.T) {
	u := NewUserUsecase(newFakeUserRepo())

	_, err := u.GetProfile(context.Background(), bson.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "Ada", "Lovelace")

	u := NewUserUsecase(userRepo)

	location := "London"
	updated, err := u.UpdateProfile(context.Background(), user.ID.Hex(), UpdateProfileParams{
		Location: &location,
	})
	require.NoError(t, err)

	assert.Equal(t, "London", updated.Location)
	assert.Equal(t, "Ada", updated.FirstName, "untouched fields must survive")
	assert.Equal(t, "Lovelace", updated.LastName)
}

func TestUpdateProfile_NothingToChange(t *testing.T) {
	userRepo := newFakeUserRepo()
	user := seedUser(t, userRepo, "Ada", "Lovelace")
	userRepo.updateErr = errors.New("update must not be called")

	u := NewUserUsecase(userRepo)

	profile, err := u.UpdateProfile(context.Background(), user.ID.Hex(), UpdateProfileParams{})
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)
}

func TestUpdateProfile_UnknownUser(t *testing.T) {
	u := NewUserUsecase(newFakeUserRepo())

	name := "Ada"
	_, err := u.UpdateProfile(context.Background(), bson.NewObjectID().Hex(), UpdateProfileParams{
		FirstName: &name,
	})
	require.ErrorIs(t, err, ErrUserNotFound)
}
