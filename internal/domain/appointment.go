package domain

import "time"

type AppointmentStatus string

const (
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentPending    AppointmentStatus = "pending"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentInProgress AppointmentStatus = "in_progress"
)

// ParseAppointmentStatus maps a raw status string onto a known status.
// Unrecognized values are passed through; the dashboard renders them with
// a neutral fallback rather than rejecting the row.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentConfirmed, AppointmentPending, AppointmentCancelled, AppointmentInProgress:
		return AppointmentStatus(s), true
	default:
		return AppointmentStatus(s), false
	}
}

type Appointment struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	AppointmentTime time.Time         `json:"appointment_time"`
	Status          AppointmentStatus `json:"status"`
	Type            string            `json:"type,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SortDirection orders appointment listings by scheduled time.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) SortDirection {
	if s == string(SortDesc) {
		return SortDesc
	}
	return SortAsc
}
