package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frequencyai/member-platform/internal/domain"
)

type AppointmentsRepo interface {
	ListByUser(ctx context.Context, userID string, dir domain.SortDirection) ([]domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
}

type AppointmentsRepoImpl struct{ pool *pgxpool.Pool }

func NewAppointmentsRepo(pool *pgxpool.Pool) *AppointmentsRepoImpl {
	return &AppointmentsRepoImpl{pool: pool}
}

const appointmentCols = `id, user_id, appointment_time, status, type, created_at, updated_at`

// scanAppointment reads one row. The type column is optional in the
// schema; a NULL scans as the empty string rather than failing the row.
func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var a domain.Appointment
	var typ pgtype.Text
	if err := row.Scan(
		&a.ID, &a.UserID, &a.AppointmentTime, &a.Status, &typ,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Type = typ.String
	return &a, nil
}

// ListByUser returns every appointment row owned by userID ordered by
// scheduled time. Sort toggles re-query rather than re-sorting in place.
func (r *AppointmentsRepoImpl) ListByUser(ctx context.Context, userID string, dir domain.SortDirection) ([]domain.Appointment, error) {
	q := `SELECT ` + appointmentCols + ` FROM appointments WHERE user_id=$1 ORDER BY appointment_time ASC`
	if dir == domain.SortDesc {
		q = `SELECT ` + appointmentCols + ` FROM appointments WHERE user_id=$1 ORDER BY appointment_time DESC`
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := make([]domain.Appointment, 0, 16)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, *a)
	}
	return appts, rows.Err()
}

func (r *AppointmentsRepoImpl) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	const q = `SELECT ` + appointmentCols + ` FROM appointments WHERE id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	a, err := scanAppointment(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return a, err
}
