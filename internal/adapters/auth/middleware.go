package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/javaBin/speechrank/internal/adapters/session"
)

// ContextKey for storing user info in request context
type ContextKey string

const (
	// SessionKey is the context key for the authenticated session
	SessionKey ContextKey = "session"

	sessionCookieName = "session"
	stateCookieName   = "oauth_state"
	returnURLCookie   = "return_url"
)

// loginStarter sends the browser to the identity provider
type loginStarter interface {
	AuthURL(state string) string
}

// GetSession retrieves the session from the context, returns nil if not present
func GetSession(ctx context.Context) *session.Session {
	if sess, ok := ctx.Value(SessionKey).(*session.Session); ok {
		return sess
	}
	return nil
}

// WithSession returns a copy of ctx carrying sess
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, SessionKey, sess)
}

// Middleware protects routes with OIDC authentication
type Middleware struct {
	store         session.Store
	authenticator loginStarter
	secureCookies bool
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(store session.Store, auth loginStarter, secureCookies bool) *Middleware {
	return &Middleware{
		store:         store,
		authenticator: auth,
		secureCookies: secureCookies,
	}
}

// RequireAuth wraps a handler requiring authentication.
// Browser navigation is sent to the login flow; any other request gets 401.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.lookup(r)
		if sess == nil {
			if r.Method != http.MethodGet {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			m.redirectToLogin(w, r, r.URL.Path)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// lookup returns the live session referenced by the request cookie, if any
func (m *Middleware) lookup(r *http.Request) *session.Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	sess, err := m.store.Get(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}
	return sess
}

// redirectToLogin generates state, stores it, and redirects to OIDC provider
func (m *Middleware) redirectToLogin(w http.ResponseWriter, r *http.Request, returnURL string) {
	state, err := generateState()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     returnURLCookie,
		Value:    returnURL,
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, m.authenticator.AuthURL(state), http.StatusFound)
}

// HandleLogin starts the login flow, returning to the "next" query parameter afterwards
func (m *Middleware) HandleLogin(w http.ResponseWriter, r *http.Request) {
	next := r.URL.Query().Get("next")
	if !isValidReturnURL(next) {
		next = "/"
	}
	m.redirectToLogin(w, r, next)
}

// generateState generates a cryptographically secure random state parameter
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
