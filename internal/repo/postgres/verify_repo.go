package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VerifyRepo interface {
	CreateEmailVerification(ctx context.Context, userID, token string, expiresAt time.Time) error
	ConsumeEmailVerification(ctx context.Context, token string) (string, error)
}

type VerifyRepoImpl struct{ pool *pgxpool.Pool }

func NewVerifyRepo(pool *pgxpool.Pool) *VerifyRepoImpl { return &VerifyRepoImpl{pool: pool} }

func (r *VerifyRepoImpl) CreateEmailVerification(ctx context.Context, userID, token string, expiresAt time.Time) error {
	const q = `INSERT INTO email_verifications (token, user_id, expires_at) VALUES ($1,$2,$3)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.pool.Exec(ctx, q, token, userID, expiresAt)
	return err
}

// ConsumeEmailVerification deletes the token and returns the owning user
// ID. An unknown or expired token yields an empty ID.
func (r *VerifyRepoImpl) ConsumeEmailVerification(ctx context.Context, token string) (string, error) {
	const q = `DELETE FROM email_verifications WHERE token=$1 AND expires_at > now() RETURNING user_id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var userID string
	err := r.pool.QueryRow(ctx, q, token).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return userID, err
}
