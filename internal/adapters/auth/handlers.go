package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/javaBin/speechrank/internal/adapters/session"
)

// codeExchanger turns an authorization code into a verified identity
type codeExchanger interface {
	Exchange(ctx context.Context, code string) (Identity, error)
}

// Handler handles auth-related HTTP requests
type Handler struct {
	store         session.Store
	authenticator codeExchanger
	sessionTTL    time.Duration
	secureCookies bool
}

// NewHandler creates a new auth handler
func NewHandler(store session.Store, auth codeExchanger, sessionTTL time.Duration, secureCookies bool) *Handler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &Handler{
		store:         store,
		authenticator: auth,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

// HandleCallback handles the OIDC callback
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil {
		slog.ErrorContext(ctx, "missing state cookie")
		http.Error(w, "Invalid state", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	if state != stateCookie.Value {
		slog.ErrorContext(ctx, "state mismatch", "expected", stateCookie.Value, "got", state)
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	h.clearCookie(w, stateCookieName)

	code := r.URL.Query().Get("code")
	if code == "" {
		slog.ErrorContext(ctx, "missing authorization code")
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	identity, err := h.authenticator.Exchange(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "OIDC exchange failed", "error", err)
		http.Error(w, "Authentication failed", http.StatusInternalServerError)
		return
	}

	sess, err := h.store.Create(ctx, identity.Email, identity.Name, h.sessionTTL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create session", "error", err)
		http.Error(w, "Session creation failed", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	slog.InfoContext(ctx, "user authenticated", "email", identity.Email)

	returnURL := "/"
	if cookie, err := r.Cookie(returnURLCookie); err == nil && isValidReturnURL(cookie.Value) {
		returnURL = cookie.Value
	}
	h.clearCookie(w, returnURLCookie)

	http.Redirect(w, r, returnURL, http.StatusFound)
}

// HandleLogout handles user logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if err := h.store.Delete(ctx, cookie.Value); err != nil {
			slog.ErrorContext(ctx, "failed to delete session", "error", err)
		}
	}

	h.clearCookie(w, sessionCookieName)

	slog.InfoContext(ctx, "user logged out")
	http.Redirect(w, r, "/", http.StatusFound)
}

// clearCookie clears a cookie by setting MaxAge to -1
func (h *Handler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// isValidReturnURL only accepts local paths to prevent open redirects
func isValidReturnURL(url string) bool {
	return strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//") && !strings.Contains(url, "\\")
}
