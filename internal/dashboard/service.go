// Package dashboard loads the member dashboard data: the appointment
// list, the usage metrics row, and a live feed that mirrors appointment
// changes into an in-memory snapshot.
package dashboard

import (
	"context"
	"fmt"

	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/repo/postgres"
	"github.com/frequencyai/member-platform/pkg/events"
	"github.com/frequencyai/member-platform/pkg/logger"
)

type Service struct {
	appointments postgres.AppointmentsRepo
	metrics      postgres.MetricsRepo
	bus          events.Subscriber
}

func NewService(appointments postgres.AppointmentsRepo, metrics postgres.MetricsRepo, bus events.Subscriber) *Service {
	return &Service{appointments: appointments, metrics: metrics, bus: bus}
}

func (s *Service) ready() error {
	if s == nil || s.appointments == nil {
		return domain.ErrNotInitialized
	}
	return nil
}

// Appointments returns the user's rows ordered by scheduled time. A sort
// toggle re-queries; nothing is re-sorted in place.
func (s *Service) Appointments(ctx context.Context, userID string, dir domain.SortDirection) ([]domain.Appointment, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	appts, err := s.appointments.ListByUser(ctx, userID, dir)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// Metrics returns the user's metrics row, or (nil, nil) when none exists
// yet. Only genuine lookup failures surface as errors.
func (s *Service) Metrics(ctx context.Context, userID string) (*domain.UserMetrics, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if s.metrics == nil {
		return nil, nil
	}
	m, err := s.metrics.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load metrics: %w", err)
	}
	return m, nil
}

// OpenFeed starts a live appointment feed for the user: a standing
// subscription on the user's change events plus a reconciling full
// fetch. onDelta, when non-nil, observes every applied change.
func (s *Service) OpenFeed(ctx context.Context, userID string, onDelta func(events.AppointmentChangeEvent)) (*Feed, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if s.bus == nil {
		return nil, domain.ErrNotInitialized
	}

	feed := newFeed(userID, onDelta)

	unsub, err := s.bus.Subscribe(events.AppointmentWildcard(userID), feed.handleMessage)
	if err != nil {
		return nil, fmt.Errorf("subscribe appointment changes: %w", err)
	}
	feed.unsubscribe = unsub

	// Fresh full fetch after (re)establishing the subscription, so a gap
	// between connect and first event cannot go unnoticed.
	appts, err := s.appointments.ListByUser(ctx, userID, domain.SortAsc)
	if err != nil {
		feed.Close()
		return nil, fmt.Errorf("initial appointment fetch: %w", err)
	}
	feed.reconcile(appts)

	logger.DebugContext(ctx, "appointment feed opened", "user_id", userID, "rows", len(appts))
	return feed, nil
}
