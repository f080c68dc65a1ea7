// Package session mirrors the authentication state for one client: the
// current user, a loading flag while the first resolution is in flight,
// and the last resolution error. Two sources write the state -- the
// initial session fetch and the auth-change subscription -- and they can
// complete in either order. Writes are stamped with a monotonically
// increasing revision so last-write-wins is deterministic instead of
// timing-dependent.
package session

import (
	"context"
	"sync"

	"github.com/frequencyai/member-platform/internal/auth"
	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/pkg/logger"
)

// Source is the slice of the auth service a tracker depends on: session
// resolution plus the auth-change subscription.
type Source interface {
	CurrentSession(ctx context.Context, accessToken string) (*domain.Session, error)
	OnAuthStateChange(fn auth.ChangeFunc) (unsubscribe func())
}

// State is an immutable snapshot of the tracked session.
type State struct {
	User    *domain.UserInfo
	Loading bool
	Err     error
}

type Tracker struct {
	src Source

	// token, when non-empty, scopes the subscription: sign-in events
	// carrying a different access token belong to another client and are
	// ignored. Sign-out events carry no session and always apply.
	token string

	mu       sync.Mutex
	state    State
	revision uint64 // bumped on every subscription event

	unsubscribe func()
}

// NewTracker follows whatever client the source signs in, the way a
// single-client session hook does. Starts in the loading state; call
// Close to release the subscription.
func NewTracker(src Source) *Tracker {
	return newTracker(src, "")
}

// NewTokenTracker follows exactly one issued access token. Sign-in
// events for other tokens never apply, so a concurrent sign-in by
// another client cannot bleed into this tracker's state.
func NewTokenTracker(src Source, accessToken string) *Tracker {
	return newTracker(src, accessToken)
}

func newTracker(src Source, token string) *Tracker {
	t := &Tracker{
		src:   src,
		token: token,
		state: State{Loading: true},
	}
	t.unsubscribe = src.OnAuthStateChange(t.onChange)
	return t
}

func (t *Tracker) onChange(event domain.AuthEvent, session *domain.Session) {
	if t.token != "" && session != nil && session.AccessToken != t.token {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.revision++
	if session != nil {
		t.state = State{User: session.User}
	} else {
		t.state = State{}
	}
	logger.Debug("session state changed", "event", string(event), "revision", t.revision)
}

// Resolve performs a session check. A subscription event that lands
// while the check is in flight supersedes its result: the check's write
// is discarded when the revision moved on. A failed check keeps the last
// known user and records the error; only a definite absence clears it.
func (t *Tracker) Resolve(ctx context.Context, accessToken string) {
	t.mu.Lock()
	started := t.revision
	t.mu.Unlock()

	session, err := t.src.CurrentSession(ctx, accessToken)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.revision != started {
		// A subscription event won the race; keep its state.
		return
	}
	if err != nil {
		logger.Warn("session resolution failed", "error", err)
		t.state = State{User: t.state.User, Err: err}
		return
	}
	if session != nil {
		t.state = State{User: session.User}
	} else {
		t.state = State{}
	}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Close releases the auth-change subscription. No other cleanup.
func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}
