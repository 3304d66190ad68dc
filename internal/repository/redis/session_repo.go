package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

const (
	sessionPrefix = "login:user:token"
	// SessionTTL is the sliding idle window for web sessions; each
	// authenticated request extends it.
	SessionTTL = 30 * time.Minute
)

// SessionRepository keeps the single active session token per user. Logging
// in elsewhere overwrites it, which invalidates the previous session.
type SessionRepository struct{}

func (r *SessionRepository) Add(ctx context.Context, userID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", sessionPrefix, userID)
	if err := Client.Set(ctx, key, token, SessionTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", sessionPrefix, userID)
	token, err := Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

func (r *SessionRepository) Extend(ctx context.Context, userID uint64) error {
	key := fmt.Sprintf("%s:%d", sessionPrefix, userID)
	if err := Client.Expire(ctx, key, SessionTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, userID uint64) error {
	key := fmt.Sprintf("%s:%d", sessionPrefix, userID)
	if err := Client.Del(ctx, key).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
