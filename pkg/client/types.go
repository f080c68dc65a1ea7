package client

import "time"

// Wire types mirroring the API's JSON payloads. They are declared here,
// not shared with the server's domain package, so importers of this SDK
// can name them.

type Profile struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	SMSOptIn    bool   `json:"sms_opt_in"`
}

type User struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Profile    Profile `json:"profile"`
	IsVerified bool    `json:"is_verified"`
}

type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	User        *User     `json:"user"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Profile  Profile `json:"profile"`
}

type Appointment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	Status          string    `json:"status"`
	Type            string    `json:"type,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type UserMetrics struct {
	UserID         string    `json:"user_id"`
	CompletionRate float64   `json:"completion_rate"`
	TimeSaved      float64   `json:"time_saved"`
	RevenueGained  float64   `json:"revenue_gained"`
	LastUpdated    time.Time `json:"last_updated"`
}

type Customer struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	SMSOptIn    bool      `json:"sms_opt_in"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
