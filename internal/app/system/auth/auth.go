// Package auth keeps the signed-in backend user in the session.
//
// There is no local credential store: the backend validates Basic-Auth
// credentials at login and on every call after that. The session only
// carries the encoded credential and the profile captured at login, so a
// request can replay the Authorization header the backend expects.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey   = "is_authenticated"
	tokenKey    = "auth_token"
	userIDKey   = "user_id"
	userNameKey = "user_name"
)

// SessionName is the cookie carrying the session.
var SessionName = "hrsadmin-session"

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// SessionUser is what we cache in the session and inject into r.Context().
// Token is the Base64 "username:password" credential the backend client
// replays as the Authorization header.
type SessionUser struct {
	ID    string
	Name  string
	Token string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user, if any.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// InitSessionStore initializes the global session Store. The secure flag
// controls the Secure cookie attribute and SameSite mode; pass false for
// local dev over plain http. An empty key is rejected in prod semantics; in
// dev a random key is generated so sessions at least work until restart.
func InitSessionStore(sessionKey, name, domain string, secure bool, logger *zap.Logger) error {
	if name != "" {
		SessionName = name
	}
	if sessionKey == "" {
		if secure {
			return fmt.Errorf("session key is empty; provide 32+ random chars")
		}
		logger.Warn("session key is empty; generating a volatile dev key")
		sessionKey = string(securecookie.GenerateRandomKey(32))
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))
	return nil
}

// SignIn records the user and credential in the session.
func SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, _ := Store.Get(r, SessionName)
	sess.Values[isAuthKey] = true
	sess.Values[tokenKey] = u.Token
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	return sess.Save(r, w)
}

// SignOut clears the session. Called on logout and whenever the backend
// answers 401 (the credential is stale or revoked).
func SignOut(w http.ResponseWriter, r *http.Request) {
	if Store == nil {
		return
	}
	sess, _ := Store.Get(r, SessionName)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
// A no-op when the store has not been initialized (tests, early startup).
func LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}
		sess, _ := Store.Get(r, SessionName)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    getString(sess, userIDKey),
				Name:  getString(sess, userNameKey),
				Token: getString(sess, tokenKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn redirects HTML requests to /login (preserving a return
// URL) and answers plain 401 to non-HTML callers.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// WithTestUser injects a user directly into the request context, bypassing
// the session middleware. Only for tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
