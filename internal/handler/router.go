package handler

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/closetly/wardrobe-api/internal/auth"
	"github.com/closetly/wardrobe-api/internal/config"
	"github.com/closetly/wardrobe-api/internal/httpx"
	"github.com/closetly/wardrobe-api/internal/middleware"
	"github.com/closetly/wardrobe-api/web"
)

// Credential endpoints get a tighter per-IP budget than the global limit.
const authRequestsPerMinute = 20

// RouterParams groups the dependencies for building the HTTP router.
type RouterParams struct {
	Logger  *zerolog.Logger
	Config  *config.Config
	JWTAuth auth.JWTAuthenticator

	AuthHandler          *AuthHandler
	PasswordResetHandler *PasswordResetHandler
	ItemHandler          *ItemHandler
	OutfitHandler        *OutfitHandler
	DashboardHandler     *DashboardHandler
	UserHandler          *UserHandler
}

// NewRouter constructs the complete HTTP surface: the JSON API under /api,
// a health probe, and the embedded front-end as the fallback for every
// other path.
func NewRouter(params RouterParams) (http.Handler, error) {
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	for _, mw := range middleware.Stack(middleware.StackConfig{
		Logger:     params.Logger,
		Production: params.Config.IsProduction(),
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		// Unknown API paths answer JSON, never the front-end document.
		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			httpx.Error(w, http.StatusNotFound, "not found")
		})

		api.Route("/auth", func(ar chi.Router) {
			ar.Use(httprate.Limit(authRequestsPerMinute, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
			params.AuthHandler.MountRoutes(ar)
			params.PasswordResetHandler.MountRoutes(ar)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticate(params.JWTAuth, params.Config.Token.Secret))
			protected.Route("/items", params.ItemHandler.MountRoutes)
			protected.Route("/outfits", params.OutfitHandler.MountRoutes)
			protected.Route("/dashboard", params.DashboardHandler.MountRoutes)
			protected.Route("/users", params.UserHandler.MountRoutes)
		})
	})

	r.NotFound(spaFallback(staticFS))

	return r, nil
}

// spaFallback serves files from the embedded front-end build when they
// exist and the entry document for everything else, so client-side routes
// survive a full page load.
func spaFallback(staticFS fs.FS) http.HandlerFunc {
	fileServer := http.FileServer(http.FS(staticFS))

	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" && path != "index.html" {
			if f, err := staticFS.Open(path); err == nil {
				_ = f.Close()
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		index, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(index)
	}
}
