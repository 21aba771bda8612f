package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"google.golang.org/api/oauth2/v2"

	"github.com/closetly/wardrobe-api/internal/config"
	"github.com/closetly/wardrobe-api/internal/model"
	"github.com/closetly/wardrobe-api/internal/repository"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Token: config.TokenConfig{
			Secret:                 "access-secret",
			ExpiresIn:              30 * 24 * time.Hour,
			Issuer:                 "wardrobe-api",
			PasswordResetSecret:    "reset-secret",
			PasswordResetExpiresIn: 15 * time.Minute,
		},
		AppPasswordResetURL: "http://localhost:8080/reset-password",
	}
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

// --- user repository ---

type fakeUserRepo struct {
	users     map[string]*model.User
	createErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError()
		}
	}

	user.ID = bson.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID.Hex()] = user

	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	user, ok := f.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Location != nil {
		user.Location = *params.Location
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.LastLoginAt != nil {
		user.LastLoginAt = *params.LastLoginAt
	}
	user.UpdatedAt = time.Now()

	return user, nil
}

// --- item repository ---

type fakeItemRepo struct {
	items     map[string]*model.Item
	order     []string
	createErr error
	updateErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[string]*model.Item)}
}

func (f *fakeItemRepo) CreateItem(_ context.Context, item *model.Item) (*model.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	item.ID = bson.NewObjectID()
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	f.items[item.ID.Hex()] = item
	f.order = append(f.order, item.ID.Hex())

	return item, nil
}

func (f *fakeItemRepo) GetItem(_ context.Context, id string) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return item, nil
}

func (f *fakeItemRepo) matches(item *model.Item, userID string, params repository.FilterItemsParams) bool {
	if item.UserID.Hex() != userID {
		return false
	}
	if params.Category != nil && item.Category != *params.Category {
		return false
	}
	if params.Clean != nil && item.Clean != *params.Clean {
		return false
	}
	if params.Season != nil {
		found := false
		for _, season := range item.Seasons {
			if season == *params.Season {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (f *fakeItemRepo) ListItems(
	_ context.Context,
	userID string,
	params repository.FilterItemsParams,
) ([]*model.Item, error) {
	var items []*model.Item
	for i := len(f.order) - 1; i >= 0; i-- {
		item, ok := f.items[f.order[i]]
		if !ok {
			continue
		}
		if f.matches(item, userID, params) {
			items = append(items, item)
		}
	}

	return items, nil
}

func (f *fakeItemRepo) UpdateItem(
	_ context.Context,
	id string,
	params repository.UpdateItemParams,
) (*model.Item, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}

	item, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.ImageURL != nil {
		item.ImageURL = *params.ImageURL
	}
	if params.Category != nil {
		item.Category = *params.Category
	}
	if params.SubCategory != nil {
		item.SubCategory = *params.SubCategory
	}
	if params.Seasons != nil {
		item.Seasons = *params.Seasons
	}
	if params.Color != nil {
		item.Color = *params.Color
	}
	if params.Warmth != nil {
		item.Warmth = *params.Warmth
	}
	if params.Clean != nil {
		item.Clean = *params.Clean
	}
	if params.LastWornAt != nil {
		item.LastWornAt = *params.LastWornAt
	}
	item.UpdatedAt = time.Now()

	return item, nil
}

func (f *fakeItemRepo) DeleteItem(_ context.Context, id string) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(f.items, id)

	return item, nil
}

func (f *fakeItemRepo) CountItems(
	_ context.Context,
	userID string,
	params repository.FilterItemsParams,
) (int64, error) {
	var count int64
	for _, item := range f.items {
		if f.matches(item, userID, params) {
			count++
		}
	}

	return count, nil
}

// --- outfit repository ---

type fakeOutfitRepo struct {
	outfits map[string]*model.Outfit
	order   []string
}

func newFakeOutfitRepo() *fakeOutfitRepo {
	return &fakeOutfitRepo{outfits: make(map[string]*model.Outfit)}
}

func (f *fakeOutfitRepo) CreateOutfit(_ context.Context, outfit *model.Outfit) (*model.Outfit, error) {
	outfit.ID = bson.NewObjectID()
	now := time.Now()
	outfit.CreatedAt = now
	outfit.UpdatedAt = now
	f.outfits[outfit.ID.Hex()] = outfit
	f.order = append(f.order, outfit.ID.Hex())

	return outfit, nil
}

func (f *fakeOutfitRepo) GetOutfit(_ context.Context, id string) (*model.Outfit, error) {
	outfit, ok := f.outfits[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return outfit, nil
}

func (f *fakeOutfitRepo) ListOutfits(
	_ context.Context,
	userID string,
	params repository.FilterOutfitsParams,
) ([]*model.Outfit, error) {
	var outfits []*model.Outfit
	for i := len(f.order) - 1; i >= 0; i-- {
		outfit, ok := f.outfits[f.order[i]]
		if !ok {
			continue
		}
		if outfit.UserID.Hex() != userID {
			continue
		}
		if params.From != nil && outfit.Date.Before(*params.From) {
			continue
		}
		if params.To != nil && outfit.Date.After(*params.To) {
			continue
		}
		outfits = append(outfits, outfit)
	}

	return outfits, nil
}

func (f *fakeOutfitRepo) DeleteOutfit(_ context.Context, id string) (*model.Outfit, error) {
	outfit, ok := f.outfits[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	delete(f.outfits, id)

	return outfit, nil
}

// --- password reset token repository ---

type fakeTokenRepo struct {
	tokens map[string]*model.PasswordResetToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*model.PasswordResetToken)}
}

func (f *fakeTokenRepo) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	token.ID = bson.NewObjectID()
	now := time.Now()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.Used = false
	f.tokens[token.JTI] = token

	return token, nil
}

func (f *fakeTokenRepo) GetTokenByJTI(_ context.Context, jti string) (*model.PasswordResetToken, error) {
	token, ok := f.tokens[jti]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return token, nil
}

func (f *fakeTokenRepo) MarkTokenAsUsed(_ context.Context, jti string) error {
	if token, ok := f.tokens[jti]; ok {
		token.Used = true
	}

	return nil
}

func (f *fakeTokenRepo) DeleteExpiredTokens(_ context.Context) (int64, error) {
	var deleted int64
	for jti, token := range f.tokens {
		if token.ExpiresAt.Before(time.Now()) {
			delete(f.tokens, jti)
			deleted++
		}
	}

	return deleted, nil
}

func (f *fakeTokenRepo) InvalidateUserTokens(_ context.Context, userID string) error {
	for _, token := range f.tokens {
		if token.UserID.Hex() == userID {
			token.Used = true
		}
	}

	return nil
}

// --- media store ---

type fakeMediaStore struct {
	uploads   []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (f *fakeMediaStore) Upload(_ context.Context, folder string, body io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}

	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://media.test/wardrobe/%s/img-%d.png", folder, len(f.uploads)+1)
	f.uploads = append(f.uploads, url)

	return url, nil
}

func (f *fakeMediaStore) Delete(_ context.Context, url string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}

	f.deleted = append(f.deleted, url)

	return nil
}

// --- mailer ---

type sentEmail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	sent    []sentEmail
	sendErr error
}

func (f *fakeMailer) SendHTML(to []string, subject, htmlBody string) error {
	if f.sendErr != nil {
		return f.sendErr
	}

	f.sent = append(f.sent, sentEmail{to: to, subject: subject, body: htmlBody})

	return nil
}

// --- google verifier ---

type fakeGoogleVerifier struct {
	tokenInfo *oauth2.Tokeninfo
	err       error
}

func (f *fakeGoogleVerifier) ValidateIDToken(_ context.Context, _ string) (*oauth2.Tokeninfo, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.tokenInfo, nil
}
