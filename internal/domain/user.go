package domain

import (
	"strings"
	"time"

	"github.com/frequencyai/member-platform/internal/validate"
)

// User is a registered member account. PasswordHash never leaves the
// service boundary.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Profile      Profile   `json:"profile"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile carries the registration metadata as named, typed fields rather
// than a free-form map.
type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	SMSOptIn    bool   `json:"sms_opt_in"`
}

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Profile  Profile `json:"profile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Profile.FirstName = strings.TrimSpace(r.Profile.FirstName)
	r.Profile.LastName = strings.TrimSpace(r.Profile.LastName)
	r.Profile.PhoneNumber = strings.TrimSpace(r.Profile.PhoneNumber)
}

// Validate enforces the registration-form rules locally, before anything
// reaches the backend. Each failure carries its own message so the form
// can surface it verbatim.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !validate.Email(r.Email) {
		return &ValidationError{Field: "email", Message: "invalid email format"}
	}
	if len(r.Password) < 6 {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if r.Profile.FirstName == "" || r.Profile.LastName == "" {
		return &ValidationError{Field: "name", Message: "first name and last name are required"}
	}
	if !validate.PhoneWithCountryCode(r.Profile.PhoneNumber) {
		return &ValidationError{Field: "phone_number", Message: "please enter a valid phone number in the format: +1-XXX-XXX-XXXX"}
	}
	return nil
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if r.Password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// UserInfo is the representation returned to clients.
type UserInfo struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Profile    Profile `json:"profile"`
	IsVerified bool    `json:"is_verified"`
}

func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:         u.ID,
		Email:      u.Email,
		Profile:    u.Profile,
		IsVerified: u.IsVerified,
	}
}
