package httpd

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/session"
	"github.com/frequencyai/member-platform/pkg/logger"
)

// SessionCookie carries the access token for browser navigation; API
// clients send it as a bearer token instead.
const SessionCookie = "fai_session"

type ctxKey string

const ctxUser ctxKey = "user"

// Guard gates page rendering on authentication state. Three outcomes:
// while session state is unresolved it renders a loading placeholder;
// without a user it redirects to the login entry point, preserving the
// requested path; with a user it serves the wrapped handler.
//
// Each access token gets its own session.Tracker, so a transient
// session-check failure keeps serving the last known user while a
// definite sign-out -- resolved or broadcast -- redirects.
type Guard struct {
	src       session.Source
	loginPath string
	ready     func() bool

	mu       sync.Mutex
	trackers map[string]*trackerEntry
	ttl      time.Duration
}

type trackerEntry struct {
	tracker   *session.Tracker
	expiresAt time.Time
}

// NewGuard builds the route guard. ready reports whether session state
// can be resolved yet; nil means always ready.
func NewGuard(src session.Source, loginPath string, ready func() bool) *Guard {
	return &Guard{
		src:       src,
		loginPath: loginPath,
		ready:     ready,
		trackers:  make(map[string]*trackerEntry),
		ttl:       time.Minute,
	}
}

// BearerToken pulls the access token from the Authorization header or
// the session cookie.
func BearerToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); len(authz) > 7 && authz[:7] == "Bearer " {
		return authz[7:]
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Protect wraps a page handler with the guard.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if g.ready != nil && !g.ready() {
			writeLoading(w)
			return
		}

		user := g.resolveUser(r)
		if user == nil {
			g.redirectToLogin(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUser, user)
		ctx = context.WithValue(ctx, logger.UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Guard) resolveUser(r *http.Request) *domain.UserInfo {
	token := BearerToken(r)
	if token == "" {
		return nil
	}

	tracker := g.trackerFor(token)
	tracker.Resolve(r.Context(), token)

	state := tracker.Snapshot()
	if state.Err != nil {
		// Logged, not a redirect by itself: the tracker kept the last
		// known user through the transient check failure.
		logger.WarnContext(r.Context(), "session check failed", "error", state.Err)
	}
	return state.User
}

// trackerFor returns the token's tracker, recreating it after ttl so a
// token that stops arriving does not hold its subscription forever.
func (g *Guard) trackerFor(token string) *session.Tracker {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if entry, ok := g.trackers[token]; ok {
		if now.Before(entry.expiresAt) {
			return entry.tracker
		}
		entry.tracker.Close()
		delete(g.trackers, token)
	}

	tracker := session.NewTokenTracker(g.src, token)
	g.trackers[token] = &trackerEntry{tracker: tracker, expiresAt: now.Add(g.ttl)}
	return tracker
}

func (g *Guard) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	dest := g.loginPath + "?redirect=" + url.QueryEscape(target)
	http.Redirect(w, r, dest, http.StatusFound)
}

// UserFrom returns the authenticated user placed in the context by the
// guard, or nil.
func UserFrom(ctx context.Context) *domain.UserInfo {
	user, _ := ctx.Value(ctxUser).(*domain.UserInfo)
	return user
}

func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusServiceUnavailable)
	w.Write([]byte(`<!doctype html><title>Frequency AI</title><meta http-equiv="refresh" content="1"><p>Verifying authentication...</p>`))
}
