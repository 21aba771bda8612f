package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/oauth2/v2"

	"github.com/closetly/wardrobe-api/internal/auth"
	"github.com/closetly/wardrobe-api/internal/config"
	"github.com/closetly/wardrobe-api/internal/model"
	"github.com/closetly/wardrobe-api/internal/provider"
	"github.com/closetly/wardrobe-api/internal/repository"
	"github.com/closetly/wardrobe-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (string, error)
	Login(ctx context.Context, params LoginParams) (string, error)
	GoogleSignIn(ctx context.Context, params GoogleSignInParams) (string, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// GoogleSignInParams defines the parameters for signing in with a Google ID
// token. The optional names are used only when the account does not exist yet.
type GoogleSignInParams struct {
	IDToken   string
	FirstName string
	LastName  string
}

var (
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidGoogleToken    = errors.New("invalid google token")
	ErrGoogleEmailUnverified = errors.New("google account email is not verified")
)

// GoogleVerifier verifies a Google ID token and returns its attributes.
type GoogleVerifier interface {
	ValidateIDToken(ctx context.Context, idToken string) (*oauth2.Tokeninfo, error)
}

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	google   GoogleVerifier
	cfg      *config.Config
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	google GoogleVerifier,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		google:   google,
		cfg:      cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (string, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return "", err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrUserAlreadyExists
		}

		return "", err
	}

	return u.generateAccessToken(user.ID.Hex())
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", err
	} else if !ok {
		return "", ErrInvalidCredentials
	}

	if err := u.recordLogin(ctx, user.ID.Hex()); err != nil {
		return "", err
	}

	return u.generateAccessToken(user.ID.Hex())
}

func (u *authUsecase) GoogleSignIn(ctx context.Context, params GoogleSignInParams) (string, error) {
	tokenInfo, err := u.google.ValidateIDToken(ctx, params.IDToken)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidGoogleAudience) {
			return "", ErrInvalidGoogleToken
		}

		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return "", ErrInvalidGoogleToken
		}

		return "", err
	}

	if !tokenInfo.VerifiedEmail {
		return "", ErrGoogleEmailUnverified
	}

	user, err := u.userRepo.GetUserByEmail(ctx, tokenInfo.Email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return "", err
		}

		user, err = u.createGoogleUser(ctx, tokenInfo.Email, params)
		if err != nil {
			return "", err
		}
	}

	if err := u.recordLogin(ctx, user.ID.Hex()); err != nil {
		return "", err
	}

	return u.generateAccessToken(user.ID.Hex())
}

func (u *authUsecase) createGoogleUser(
	ctx context.Context,
	email string,
	params GoogleSignInParams,
) (*model.User, error) {
	firstName := params.FirstName
	if firstName == "" {
		firstName, _, _ = strings.Cut(email, "@")
	}

	// Google accounts never log in with a password; the filler hash keeps the
	// record from ever matching one.
	filler := make([]byte, 32)
	if _, err := rand.Read(filler); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(hex.EncodeToString(filler))
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     params.LastName,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost a race with a concurrent first sign-in; use the winner.
			return u.userRepo.GetUserByEmail(ctx, email)
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) recordLogin(ctx context.Context, userID string) error {
	now := time.Now()
	_, err := u.userRepo.UpdateUser(ctx, userID, repository.UpdateUserParams{LastLoginAt: &now})

	return err
}

func (u *authUsecase) generateAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.Token.ExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.cfg.Token.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.cfg.Token.Secret)
}
