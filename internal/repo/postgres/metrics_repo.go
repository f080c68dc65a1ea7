package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/frequencyai/member-platform/internal/domain"
)

type MetricsRepo interface {
	FindByUserID(ctx context.Context, userID string) (*domain.UserMetrics, error)
}

type MetricsRepoImpl struct{ pool *pgxpool.Pool }

func NewMetricsRepo(pool *pgxpool.Pool) *MetricsRepoImpl { return &MetricsRepoImpl{pool: pool} }

// FindByUserID returns the single metrics row for a user. New users have
// none; that surfaces as (nil, nil), not an error.
func (r *MetricsRepoImpl) FindByUserID(ctx context.Context, userID string) (*domain.UserMetrics, error) {
	const q = `SELECT user_id, completion_rate, time_saved, revenue_gained, last_updated
FROM user_metrics WHERE user_id=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var m domain.UserMetrics
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&m.UserID, &m.CompletionRate, &m.TimeSaved, &m.RevenueGained, &m.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
