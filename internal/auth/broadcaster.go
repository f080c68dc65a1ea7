package auth

import (
	"sync"

	"github.com/frequencyai/member-platform/internal/domain"
)

// ChangeFunc receives every transition between signed-in and signed-out,
// plus token refreshes.
type ChangeFunc func(event domain.AuthEvent, session *domain.Session)

// broadcaster fans auth-state transitions out to any number of
// independent subscribers. Each subscriber owns its own unsubscribe
// handle; removing one never disturbs the others.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]ChangeFunc
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[int]ChangeFunc)}
}

func (b *broadcaster) subscribe(fn ChangeFunc) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *broadcaster) notify(event domain.AuthEvent, session *domain.Session) {
	b.mu.Lock()
	fns := make([]ChangeFunc, 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may unsubscribe
	// (itself or another) from within its handler.
	for _, fn := range fns {
		fn(event, session)
	}
}
