// Package revocation keeps a Redis denylist of signed-out session ids.
// Entries expire with the session token they shadow, so the list stays
// bounded without a sweeper.
package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type SessionList struct {
	redis *redis.Client
}

func NewSessionList(redisClient *redis.Client) *SessionList {
	return &SessionList{
		redis: redisClient,
	}
}

// Revoke marks a session id as signed out until its token would have
// expired anyway. Already-expired sessions need no entry.
func (l *SessionList) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	key := fmt.Sprintf("revoked:session:%s", sessionID)
	if err := l.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

// IsRevoked checks whether a session id has been signed out.
func (l *SessionList) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	key := fmt.Sprintf("revoked:session:%s", sessionID)

	exists, err := l.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}

	return exists > 0, nil
}
