package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/javaBin/speechrank/internal/adapters/session"
	"github.com/javaBin/speechrank/internal/config"
)

// sessionPurgeInterval is how often expired sessions are dropped from memory
const sessionPurgeInterval = time.Hour

// MiddlewareFunc is a function that wraps a handler with middleware
type MiddlewareFunc func(http.Handler) http.Handler

// Adapter holds the auth adapter dependencies
type Adapter struct {
	handler    *Handler
	middleware *Middleware
	protect    MiddlewareFunc
}

// passthroughMiddleware returns the handler unchanged (no authentication)
func passthroughMiddleware(next http.Handler) http.Handler {
	return next
}

// New creates a new auth adapter.
// In development mode, returns an adapter with passthrough middleware.
// In production mode, OIDC must be configured or an error is returned.
func New(ctx context.Context) (*Adapter, error) {
	cfg := config.GetConfig(ctx)

	if cfg.Mode.IsDevelopment() {
		slog.Info("auth disabled (development mode)")
		return &Adapter{
			protect: passthroughMiddleware,
		}, nil
	}

	if !cfg.OIDC.IsConfigured() {
		return nil, fmt.Errorf("production mode but OIDC not configured")
	}

	oidcConfig := OIDCConfig{
		IssuerURL:    cfg.OIDC.IssuerURL,
		ClientID:     cfg.OIDC.ClientID,
		ClientSecret: cfg.OIDC.ClientSecret,
		RedirectURL:  cfg.OIDC.RedirectURL,
	}

	authenticator, err := NewAuthenticator(ctx, oidcConfig)
	if err != nil {
		return nil, err
	}
	slog.Info("OIDC authenticator initialized")

	sessionStore := session.NewInMemoryStore()
	go purgeSessions(ctx, sessionStore, sessionPurgeInterval)

	secureCookies := true
	authMiddleware := NewMiddleware(sessionStore, authenticator, secureCookies)

	return &Adapter{
		handler:    NewHandler(sessionStore, authenticator, cfg.OIDC.SessionTTL, secureCookies),
		middleware: authMiddleware,
		protect:    authMiddleware.RequireAuth,
	}, nil
}

// RegisterRoutes registers auth routes (/auth/login, /auth/callback, /auth/logout).
// Only registers routes if OIDC authentication is enabled.
func (a *Adapter) RegisterRoutes(mux *http.ServeMux) {
	if a.handler == nil {
		return
	}

	mux.HandleFunc("GET /auth/login", a.middleware.HandleLogin)
	mux.HandleFunc("GET /auth/callback", a.handler.HandleCallback)
	mux.HandleFunc("POST /auth/logout", a.handler.HandleLogout)

	slog.Info("auth routes registered")
}

// Middleware returns the authentication middleware.
// In development mode, this is a passthrough (no-op) middleware.
// In production mode, this requires authentication.
func (a *Adapter) Middleware() MiddlewareFunc {
	return a.protect
}

// purgeSessions drops expired sessions until ctx is done
func purgeSessions(ctx context.Context, store *session.InMemoryStore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.PurgeExpired(); n > 0 {
				slog.Debug("purged expired sessions", "count", n)
			}
		}
	}
}
