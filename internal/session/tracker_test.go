package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/frequencyai/member-platform/internal/auth"
	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/repo/redisstore"
	"github.com/frequencyai/member-platform/pkg/config"
)

// ---------- Mocks ----------

type memUsersRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (m *memUsersRepo) Create(_ context.Context, email, hash string, profile domain.Profile) (*domain.User, error) {
	u := &domain.User{ID: uuid.NewString(), Email: email, PasswordHash: hash, Profile: profile}
	m.byEmail[email] = u
	m.byID[u.ID] = u
	return u, nil
}

func (m *memUsersRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.byEmail[email], nil
}

func (m *memUsersRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	return m.byID[id], nil
}

func (m *memUsersRepo) MarkVerified(context.Context, string) error { return nil }

// memSessionsStore optionally blocks Find until gate is closed, to force
// the race between the initial check and a subscription event.
// retainOnDelete simulates a lagging store whose reads still return a
// revoked session.
type memSessionsStore struct {
	records        map[string]*redisstore.SessionRecord
	gate           chan struct{}
	retainOnDelete bool
	findErr        error
}

func newMemSessionsStore() *memSessionsStore {
	return &memSessionsStore{records: map[string]*redisstore.SessionRecord{}}
}

func (m *memSessionsStore) Save(_ context.Context, rec *redisstore.SessionRecord) error {
	m.records[rec.ID] = rec
	return nil
}

func (m *memSessionsStore) Find(_ context.Context, id string) (*redisstore.SessionRecord, error) {
	if m.gate != nil {
		<-m.gate
	}
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.records[id], nil
}

func (m *memSessionsStore) Delete(_ context.Context, id string) error {
	if !m.retainOnDelete {
		delete(m.records, id)
	}
	return nil
}

func newTrackedService(sessions *memSessionsStore) *auth.Service {
	cfg := config.Load()
	cfg.Auth.JWTSecret = "test-secret-not-for-production"
	cfg.Auth.SessionTTL = time.Hour
	return auth.NewService(newMemUsersRepo(), nil, nil, sessions, nil, cfg)
}

func register(t *testing.T, svc *auth.Service) {
	t.Helper()
	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "jane@example.com",
		Password: "secret1",
		Profile:  domain.Profile{FirstName: "Jane", LastName: "Doe", PhoneNumber: "555-123-4567"},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
}

// ---------- Tests ----------

func TestTrackerStartsLoading(t *testing.T) {
	svc := newTrackedService(newMemSessionsStore())
	tr := NewTracker(svc)
	defer tr.Close()

	state := tr.Snapshot()
	if !state.Loading || state.User != nil || state.Err != nil {
		t.Errorf("initial state = %+v, want loading with no user", state)
	}
}

func TestResolveWithoutSession(t *testing.T) {
	svc := newTrackedService(newMemSessionsStore())
	tr := NewTracker(svc)
	defer tr.Close()

	tr.Resolve(context.Background(), "")

	state := tr.Snapshot()
	if state.Loading || state.User != nil || state.Err != nil {
		t.Errorf("state = %+v, want resolved with no user", state)
	}
}

func TestResolveWithSession(t *testing.T) {
	sessions := newMemSessionsStore()
	svc := newTrackedService(sessions)
	register(t, svc)

	signed, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	tr := NewTracker(svc)
	defer tr.Close()
	tr.Resolve(context.Background(), signed.AccessToken)

	state := tr.Snapshot()
	if state.Loading || state.User == nil || state.User.Email != "jane@example.com" {
		t.Errorf("state = %+v, want resolved user", state)
	}
}

func TestSubscriptionEventUpdatesState(t *testing.T) {
	svc := newTrackedService(newMemSessionsStore())
	register(t, svc)

	tr := NewTracker(svc)
	defer tr.Close()

	if _, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "jane@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	state := tr.Snapshot()
	if state.Loading || state.User == nil {
		t.Errorf("state after sign-in event = %+v, want user", state)
	}
}

func TestLateSubscriptionEventSupersedesInFlightResolve(t *testing.T) {
	sessions := newMemSessionsStore()
	svc := newTrackedService(sessions)
	register(t, svc)

	signed, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	tr := NewTracker(svc)
	defer tr.Close()

	// Hold the initial check open while a sign-out event arrives. The
	// store keeps returning the revoked record, so the stale resolve
	// would report a signed-in user were it not discarded.
	sessions.retainOnDelete = true
	sessions.gate = make(chan struct{})
	done := make(chan struct{})
	go func() {
		tr.Resolve(context.Background(), signed.AccessToken)
		close(done)
	}()

	if err := svc.SignOut(context.Background(), signed.AccessToken); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	close(sessions.gate)
	<-done

	// The resolve started before the sign-out; its stale result must not
	// resurrect the user.
	state := tr.Snapshot()
	if state.User != nil {
		t.Errorf("stale resolve overwrote sign-out: %+v", state)
	}
	if state.Loading {
		t.Error("state still loading")
	}
}

func TestResolveFailureKeepsLastKnownUser(t *testing.T) {
	sessions := newMemSessionsStore()
	svc := newTrackedService(sessions)
	register(t, svc)

	signed, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	tr := NewTokenTracker(svc, signed.AccessToken)
	defer tr.Close()
	tr.Resolve(context.Background(), signed.AccessToken)

	sessions.findErr = errors.New("store unavailable")
	tr.Resolve(context.Background(), signed.AccessToken)

	state := tr.Snapshot()
	if state.User == nil || state.User.Email != "jane@example.com" {
		t.Errorf("transient failure dropped the user: %+v", state)
	}
	if state.Err == nil {
		t.Error("failure not recorded")
	}
}

func TestTokenTrackerIgnoresOtherClientsSignIn(t *testing.T) {
	sessions := newMemSessionsStore()
	svc := newTrackedService(sessions)
	register(t, svc)

	first, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "jane@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	tr := NewTokenTracker(svc, first.AccessToken)
	defer tr.Close()
	tr.Resolve(context.Background(), first.AccessToken)

	// A different client signs in with its own token; that event must
	// not rebind the first token's tracker.
	if _, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "john@example.com",
		Password: "secret2",
		Profile:  domain.Profile{FirstName: "John", LastName: "Doe", PhoneNumber: "555-987-6543"},
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "john@example.com", Password: "secret2"}); err != nil {
		t.Fatalf("second SignIn: %v", err)
	}

	state := tr.Snapshot()
	if state.User == nil || state.User.Email != "jane@example.com" {
		t.Errorf("tracker adopted another client's session: %+v", state)
	}
}

func TestCloseReleasesSubscription(t *testing.T) {
	svc := newTrackedService(newMemSessionsStore())
	register(t, svc)

	tr := NewTracker(svc)
	tr.Resolve(context.Background(), "")
	tr.Close()

	if _, err := svc.SignIn(context.Background(), &domain.LoginRequest{Email: "jane@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	state := tr.Snapshot()
	if state.User != nil {
		t.Error("closed tracker still receives events")
	}
}
