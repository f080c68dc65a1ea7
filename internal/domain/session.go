package domain

import "time"

// Session is the record that a particular client is currently
// authenticated as a particular user. The access token is opaque to
// callers; its presence or absence is the sole signal route guarding
// relies on.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	User        *UserInfo `json:"user"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthEvent names a transition on the authentication state.
type AuthEvent string

const (
	AuthSignedIn       AuthEvent = "SIGNED_IN"
	AuthSignedOut      AuthEvent = "SIGNED_OUT"
	AuthTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)
