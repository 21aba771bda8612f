// Package handler wires the HTTP endpoints to the usecase layer and maps
// usecase errors onto the wire taxonomy. Unexpected errors are logged and
// answered with a generic message only.
package handler

import (
	"net/http"

	"github.com/closetly/wardrobe-api/internal/httpx"
	"github.com/closetly/wardrobe-api/internal/middleware"
)

// userIDFrom extracts the authenticated user's ID from the request context.
// On a miss it writes the 401 response itself and returns false.
func userIDFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "invalid authentication token")
	}

	return userID, ok
}
