package middleware

import (
	"context"
	"net/http"

	"github.com/closetly/wardrobe-api/internal/auth"
	"github.com/closetly/wardrobe-api/internal/httpx"
)

// AuthTokenHeader is the request header expected to carry the raw access
// token, without a scheme prefix.
const AuthTokenHeader = "X-Auth-Token"

type contextKey struct{}

var userIDKey = contextKey{}

// Authenticate enforces a valid access token on every request it wraps.
// A missing or unverifiable token short-circuits with 401 before any
// handler or store work happens.
func Authenticate(jwtAuth auth.JWTAuthenticator, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := r.Header.Get(AuthTokenHeader)
			if tokenString == "" {
				httpx.Error(w, http.StatusUnauthorized, "authentication token required")
				return
			}

			claims := &auth.Claims{}
			if _, err := jwtAuth.ValidateTokenWithClaims(tokenString, secret, claims); err != nil {
				httpx.Error(w, http.StatusUnauthorized, "invalid authentication token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), claims.UserID)))
		})
	}
}

// ContextWithUserID returns a context carrying the authenticated user's ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the user ID attached by Authenticate.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
