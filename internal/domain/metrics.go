package domain

import "time"

// UserMetrics is the per-user usage aggregate shown on the dashboard.
// At most one row exists per user; absence means "no metrics yet" and is
// not an error.
type UserMetrics struct {
	UserID         string    `json:"user_id"`
	CompletionRate float64   `json:"completion_rate"`
	TimeSaved      float64   `json:"time_saved"`
	RevenueGained  float64   `json:"revenue_gained"`
	LastUpdated    time.Time `json:"last_updated"`
}
