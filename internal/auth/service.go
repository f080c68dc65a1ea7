// Package auth implements the member authentication operations: register,
// sign-in, sign-out, session resolution and auth-state subscription. Every
// operation returns a result-with-error, never panics, and logs its
// outcome for diagnostics.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/frequencyai/member-platform/internal/auth/mailer"
	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/platform/token"
	"github.com/frequencyai/member-platform/internal/repo/postgres"
	"github.com/frequencyai/member-platform/internal/repo/redisstore"
	"github.com/frequencyai/member-platform/pkg/config"
	"github.com/frequencyai/member-platform/pkg/logger"
)

type Service struct {
	users     postgres.UsersRepo
	customers postgres.CustomersRepo
	verify    postgres.VerifyRepo
	sessions  redisstore.SessionsStore
	mail      mailer.Service
	cfg       *config.Config
	changes   *broadcaster
}

func NewService(
	users postgres.UsersRepo,
	customers postgres.CustomersRepo,
	verify postgres.VerifyRepo,
	sessions redisstore.SessionsStore,
	mail mailer.Service,
	cfg *config.Config,
) *Service {
	return &Service{
		users:     users,
		customers: customers,
		verify:    verify,
		sessions:  sessions,
		mail:      mail,
		cfg:       cfg,
		changes:   newBroadcaster(),
	}
}

// ready guards every operation so a service built without a configured
// platform degrades into ErrNotInitialized.
func (s *Service) ready() error {
	if s == nil || s.users == nil || s.sessions == nil {
		return domain.ErrNotInitialized
	}
	return nil
}

// Register creates a member account with its profile and customer row,
// then kicks off email verification. The visitor is not signed in; the
// form switches to login mode after success.
func (s *Service) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.UserInfo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		logger.WarnContext(ctx, "registration rejected locally", "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "registering user", "email", req.Email)

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, &domain.ValidationError{Field: "email", Message: "an account with this email already exists"}
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, hash, req.Profile)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.customers != nil {
		if _, err := s.customers.Create(ctx, user.ID, user.Profile, user.Email); err != nil {
			logger.WarnContext(ctx, "failed to create customer row", "error", err, "user_id", user.ID)
		}
	}

	if s.verify != nil {
		verifyToken := uuid.NewString()
		expiresAt := time.Now().Add(s.cfg.Auth.EmailVerificationTTL)
		if err := s.verify.CreateEmailVerification(ctx, user.ID, verifyToken, expiresAt); err != nil {
			logger.ErrorContext(ctx, "failed to create verification token", "error", err, "user_id", user.ID)
		} else if s.mail != nil {
			verifyURL := fmt.Sprintf("%s/member?verify=%s", s.cfg.Platform.BaseURL, verifyToken)
			if err := s.mail.SendVerificationEmail(user.Email, user.Profile.FirstName, verifyURL); err != nil {
				// Registration still succeeds; the user can request a resend.
				logger.ErrorContext(ctx, "failed to send verification email", "error", err, "user_id", user.ID)
			}
		}
	}

	logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user.ToUserInfo(), nil
}

// SignIn exchanges credentials for a session. Every authentication
// rejection surfaces as ErrInvalidCredentials.
func (s *Service) SignIn(ctx context.Context, req *domain.LoginRequest) (*domain.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "sign-in attempt", "email", req.Email)

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "sign-in succeeded", "user_id", user.ID, "session_id", session.ID)
	s.changes.notify(domain.AuthSignedIn, session)
	return session, nil
}

func (s *Service) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	now := time.Now()
	rec := &redisstore.SessionRecord{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.Auth.SessionTTL),
	}
	if err := s.sessions.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	accessToken, err := token.New(user.ID, user.Email, rec.ID, s.cfg.Auth.JWTSecret, s.cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &domain.Session{
		ID:          rec.ID,
		AccessToken: accessToken,
		User:        user.ToUserInfo(),
		ExpiresAt:   rec.ExpiresAt,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// SignOut revokes the session behind the token. It is idempotent: an
// unknown, expired or already-revoked token is still success.
func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	if err := s.ready(); err != nil {
		return err
	}

	claims, err := token.Parse(accessToken, s.cfg.Auth.JWTSecret)
	if err != nil {
		logger.DebugContext(ctx, "sign-out with unparseable token", "error", err)
		s.changes.notify(domain.AuthSignedOut, nil)
		return nil
	}

	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	logger.InfoContext(ctx, "signed out", "user_id", claims.UserID, "session_id", claims.SessionID)
	s.changes.notify(domain.AuthSignedOut, nil)
	return nil
}

// CurrentSession resolves whatever session the platform currently holds
// for the token. Absence is (nil, nil), never an error.
func (s *Service) CurrentSession(ctx context.Context, accessToken string) (*domain.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	if accessToken == "" {
		return nil, nil
	}

	claims, err := token.Parse(accessToken, s.cfg.Auth.JWTSecret)
	if err != nil {
		logger.DebugContext(ctx, "session token rejected", "error", err)
		return nil, nil
	}

	rec, err := s.sessions.Find(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session record: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	user, err := s.users.FindByID(ctx, rec.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	return &domain.Session{
		ID:          rec.ID,
		AccessToken: accessToken,
		User:        user.ToUserInfo(),
		ExpiresAt:   rec.ExpiresAt,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

// OnAuthStateChange registers fn for every auth transition and returns
// its unsubscribe handle. Subscribers are independent.
func (s *Service) OnAuthStateChange(fn ChangeFunc) (unsubscribe func()) {
	return s.changes.subscribe(fn)
}

// VerifyEmail consumes a verification token and marks the account
// confirmed.
func (s *Service) VerifyEmail(ctx context.Context, verifyToken string) (*domain.UserInfo, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	userID, err := s.verify.ConsumeEmailVerification(ctx, verifyToken)
	if err != nil {
		return nil, fmt.Errorf("consume verification token: %w", err)
	}
	if userID == "" {
		return nil, fmt.Errorf("invalid or expired verification token: %w", domain.ErrNotFound)
	}

	if err := s.users.MarkVerified(ctx, userID); err != nil {
		return nil, fmt.Errorf("mark verified: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load verified user: %w", err)
	}

	logger.InfoContext(ctx, "email verified", "user_id", userID)
	return user.ToUserInfo(), nil
}
