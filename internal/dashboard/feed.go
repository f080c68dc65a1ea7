package dashboard

import (
	"encoding/json"
	"sync"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/pkg/events"
	"github.com/frequencyai/member-platform/pkg/logger"
)

// Feed mirrors one user's appointment rows. Change events are applied in
// arrival order, last event wins per identifier: inserts append, updates
// replace by ID, deletes remove by ID.
type Feed struct {
	userID  string
	onDelta func(events.AppointmentChangeEvent)

	mu          sync.Mutex
	rows        []domain.Appointment
	closed      bool
	unsubscribe events.Unsubscribe
}

func newFeed(userID string, onDelta func(events.AppointmentChangeEvent)) *Feed {
	return &Feed{userID: userID, onDelta: onDelta}
}

func (f *Feed) handleMessage(msg *events.Message) {
	var evt events.AppointmentChangeEvent
	if err := json.Unmarshal(msg.Data, &evt); err != nil {
		logger.Warn("dropping malformed appointment event", "subject", msg.Subject, "error", err)
		return
	}
	f.Apply(evt)
}

// Apply folds one change event into the snapshot. Events for other users
// and events arriving after Close are ignored.
func (f *Feed) Apply(evt events.AppointmentChangeEvent) {
	if evt.UserID != "" && evt.UserID != f.userID {
		return
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	switch evt.Kind {
	case events.AppointmentDeleted:
		for i, row := range f.rows {
			if row.ID == evt.AppointmentID {
				f.rows = append(f.rows[:i], f.rows[i+1:]...)
				break
			}
		}
	case events.AppointmentCreated, events.AppointmentUpdated:
		var appt domain.Appointment
		if err := json.Unmarshal(evt.Row, &appt); err != nil {
			f.mu.Unlock()
			logger.Warn("dropping appointment event with malformed row", "error", err)
			return
		}
		replaced := false
		for i, row := range f.rows {
			if row.ID == appt.ID {
				f.rows[i] = appt
				replaced = true
				break
			}
		}
		if !replaced && evt.Kind == events.AppointmentCreated {
			f.rows = append(f.rows, appt)
		}
	default:
		f.mu.Unlock()
		logger.Warn("dropping appointment event of unknown kind", "kind", evt.Kind)
		return
	}
	onDelta := f.onDelta
	f.mu.Unlock()

	if onDelta != nil {
		onDelta(evt)
	}
}

// reconcile replaces the snapshot with a fresh full fetch, diffing by
// identifier rather than trusting the delta stream across a reconnect.
func (f *Feed) reconcile(rows []domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.rows = append([]domain.Appointment(nil), rows...)
}

// Snapshot returns a copy of the current rows.
func (f *Feed) Snapshot() []domain.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Appointment(nil), f.rows...)
}

// Close tears the subscription down. Events already in flight become
// no-ops; closing twice is safe.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	unsub := f.unsubscribe
	f.unsubscribe = nil
	f.mu.Unlock()

	if unsub != nil {
		if err := unsub(); err != nil {
			logger.Warn("appointment feed unsubscribe failed", "error", err)
		}
	}
}
