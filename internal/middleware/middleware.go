// Package middleware provides the HTTP middleware chain and the
// request-scoped identity helpers used by protected routes.
package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"
)

// StackConfig aggregates dependencies shared by the middleware stack.
type StackConfig struct {
	Logger     *zerolog.Logger
	Production bool
	Timeout    time.Duration
}

// Stack returns the middleware chain applied to every route.
func Stack(cfg StackConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' https:",
		SSLRedirect:           cfg.Production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := 30 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return []func(http.Handler) http.Handler{
		chimiddleware.RealIP,
		chimiddleware.RequestID,
		RequestLogger(cfg.Logger),
		chimiddleware.Recoverer,
		chimiddleware.Timeout(timeout),
		secureMiddleware.Handler,
		chimiddleware.Compress(5),
		httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
	}
}
