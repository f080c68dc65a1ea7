// Package redisstore persists issued-session records. The JWT alone
// proves who signed in; the record here is what sign-out revokes, so a
// signed-out token stops resolving before it expires.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SessionsStore interface {
	Save(ctx context.Context, rec *SessionRecord) error
	Find(ctx context.Context, sessionID string) (*SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

type SessionsStoreImpl struct{ rdb *redis.Client }

func NewSessionsStore(rdb *redis.Client) *SessionsStoreImpl { return &SessionsStoreImpl{rdb: rdb} }

func sessionKey(id string) string { return "session:" + id }

func (s *SessionsStoreImpl) Save(ctx context.Context, rec *SessionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	ttl := time.Until(rec.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session record already expired")
	}
	return s.rdb.Set(ctx, sessionKey(rec.ID), payload, ttl).Err()
}

// Find returns (nil, nil) for unknown or expired sessions.
func (s *SessionsStoreImpl) Find(ctx context.Context, sessionID string) (*SessionRecord, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec SessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session record: %w", err)
	}
	return &rec, nil
}

// Delete is idempotent: removing an absent session is success.
func (s *SessionsStoreImpl) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
