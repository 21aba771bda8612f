package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/closetly/wardrobe-api/internal/auth"
	"github.com/closetly/wardrobe-api/internal/config"
	"github.com/closetly/wardrobe-api/internal/handler"
	"github.com/closetly/wardrobe-api/internal/model"
	"github.com/closetly/wardrobe-api/internal/repository"
	"github.com/closetly/wardrobe-api/internal/usecase"
	"github.com/closetly/wardrobe-api/internal/validation"
)

const (
	testSecret = "handler-secret"
	testIssuer = "wardrobe-api"
)

func testConfig() *config.Config {
	return &config.Config{
		AppEnv: "test",
		Token: config.TokenConfig{
			Secret:    testSecret,
			ExpiresIn: time.Hour,
			Issuer:    testIssuer,
		},
	}
}

func issueToken(t *testing.T, userID string) string {
	t.Helper()

	a := auth.NewJWTAuthenticator(testIssuer, testIssuer)
	now := time.Now()
	tokenStr, err := a.GenerateToken(auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testIssuer},
		},
	}, testSecret)
	require.NoError(t, err)

	return tokenStr
}

// --- usecase stubs ---

type stubAuthUsecase struct {
	token string
	err   error
}

func (s *stubAuthUsecase) Register(_ context.Context, _ usecase.RegisterParams) (string, error) {
	return s.token, s.err
}

func (s *stubAuthUsecase) Login(_ context.Context, _ usecase.LoginParams) (string, error) {
	return s.token, s.err
}

func (s *stubAuthUsecase) GoogleSignIn(_ context.Context, _ usecase.GoogleSignInParams) (string, error) {
	return s.token, s.err
}

type stubPasswordResetUsecase struct {
	err error
}

func (s *stubPasswordResetUsecase) RequestPasswordReset(_ context.Context, _ string) error {
	return s.err
}

func (s *stubPasswordResetUsecase) ResetPassword(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubPasswordResetUsecase) ValidatePasswordResetToken(_ context.Context, _ string) error {
	return s.err
}

type stubItemUsecase struct {
	item  *model.Item
	items []*model.Item
	err   error

	gotUserID    string
	gotItemID    string
	createParams *usecase.CreateItemParams
	listParams   repository.FilterItemsParams
	imageBytes   []byte
}

func (s *stubItemUsecase) CreateItem(
	_ context.Context,
	userID string,
	params usecase.CreateItemParams,
) (*model.Item, error) {
	s.gotUserID = userID
	if params.Image != nil {
		s.imageBytes, _ = io.ReadAll(params.Image)
	}
	s.createParams = &params

	return s.item, s.err
}

func (s *stubItemUsecase) ListItems(
	_ context.Context,
	userID string,
	params repository.FilterItemsParams,
) ([]*model.Item, error) {
	s.gotUserID = userID
	s.listParams = params

	return s.items, s.err
}

func (s *stubItemUsecase) GetItem(_ context.Context, userID, itemID string) (*model.Item, error) {
	s.gotUserID = userID
	s.gotItemID = itemID

	return s.item, s.err
}

func (s *stubItemUsecase) DeleteItem(_ context.Context, userID, itemID string) error {
	s.gotUserID = userID
	s.gotItemID = itemID

	return s.err
}

func (s *stubItemUsecase) MarkItemWorn(_ context.Context, userID, itemID string) (*model.Item, error) {
	s.gotUserID = userID
	s.gotItemID = itemID

	return s.item, s.err
}

func (s *stubItemUsecase) MarkItemClean(_ context.Context, userID, itemID string) (*model.Item, error) {
	s.gotUserID = userID
	s.gotItemID = itemID

	return s.item, s.err
}

type stubOutfitUsecase struct {
	outfit  *model.Outfit
	outfits []*model.Outfit
	err     error

	gotUserID    string
	createParams *usecase.CreateOutfitParams
	listParams   repository.FilterOutfitsParams
}

func (s *stubOutfitUsecase) CreateOutfit(
	_ context.Context,
	userID string,
	params usecase.CreateOutfitParams,
) (*model.Outfit, error) {
	s.gotUserID = userID
	s.createParams = &params

	return s.outfit, s.err
}

func (s *stubOutfitUsecase) ListOutfits(
	_ context.Context,
	userID string,
	params repository.FilterOutfitsParams,
) ([]*model.Outfit, error) {
	s.gotUserID = userID
	s.listParams = params

	return s.outfits, s.err
}

func (s *stubOutfitUsecase) DeleteOutfit(_ context.Context, userID, _ string) error {
	s.gotUserID = userID

	return s.err
}

type stubDashboardUsecase struct {
	stats *usecase.DashboardStats
	err   error

	gotUserID string
}

func (s *stubDashboardUsecase) Stats(_ context.Context, userID string) (*usecase.DashboardStats, error) {
	s.gotUserID = userID

	return s.stats, s.err
}

type stubUserUsecase struct {
	user *model.User
	err  error

	updateParams *usecase.UpdateProfileParams
}

func (s *stubUserUsecase) GetProfile(_ context.Context, _ string) (*model.User, error) {
	return s.user, s.err
}

func (s *stubUserUsecase) UpdateProfile(
	_ context.Context,
	_ string,
	params usecase.UpdateProfileParams,
) (*model.User, error) {
	s.updateParams = &params

	return s.user, s.err
}

// --- router fixture ---

type testStubs struct {
	auth      *stubAuthUsecase
	reset     *stubPasswordResetUsecase
	items     *stubItemUsecase
	outfits   *stubOutfitUsecase
	dashboard *stubDashboardUsecase
	users     *stubUserUsecase
}

func newTestRouter(t *testing.T, stubs testStubs) http.Handler {
	t.Helper()

	if stubs.auth == nil {
		stubs.auth = &stubAuthUsecase{}
	}
	if stubs.reset == nil {
		stubs.reset = &stubPasswordResetUsecase{}
	}
	if stubs.items == nil {
		stubs.items = &stubItemUsecase{}
	}
	if stubs.outfits == nil {
		stubs.outfits = &stubOutfitUsecase{}
	}
	if stubs.dashboard == nil {
		stubs.dashboard = &stubDashboardUsecase{}
	}
	if stubs.users == nil {
		stubs.users = &stubUserUsecase{}
	}

	validator, err := validation.New()
	require.NoError(t, err)

	logger := zerolog.Nop()
	cfg := testConfig()
	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)

	router, err := handler.NewRouter(handler.RouterParams{
		Logger:               &logger,
		Config:               cfg,
		JWTAuth:              jwtAuth,
		AuthHandler:          handler.NewAuthHandler(stubs.auth, validator, &logger),
		PasswordResetHandler: handler.NewPasswordResetHandler(stubs.reset, validator, &logger),
		ItemHandler:          handler.NewItemHandler(stubs.items, validator, &logger),
		OutfitHandler:        handler.NewOutfitHandler(stubs.outfits, validator, &logger),
		DashboardHandler:     handler.NewDashboardHandler(stubs.dashboard, &logger),
		UserHandler:          handler.NewUserHandler(stubs.users, validator, &logger),
	})
	require.NoError(t, err)

	return router
}

// itemForm builds a multipart item form with an optional image part.
func itemForm(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, w.WriteField(name, value))
	}
	if imageName != "" {
		part, err := w.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}
