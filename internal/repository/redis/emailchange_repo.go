package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNoPendingEmail = errors.New("no pending email change")

const pendingEmailPrefix = "email:change:pending"

// EmailChangeRepository is the side cache for the email-change flow. The new
// address never rides inside the signed token; it lives here under the same
// TTL, so either the token or this entry expiring kills the flow, and the
// pending change can be cancelled by deleting the key. Concurrent requests
// for the same user are last-write-wins.
type EmailChangeRepository struct{}

func (r *EmailChangeRepository) Set(ctx context.Context, userID uint64, newEmail string, ttl time.Duration) error {
	key := fmt.Sprintf("%s:%d", pendingEmailPrefix, userID)
	if err := Client.Set(ctx, key, newEmail, ttl).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *EmailChangeRepository) Get(ctx context.Context, userID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", pendingEmailPrefix, userID)
	email, err := Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoPendingEmail
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return email, nil
}

func (r *EmailChangeRepository) Delete(ctx context.Context, userID uint64) error {
	key := fmt.Sprintf("%s:%d", pendingEmailPrefix, userID)
	if err := Client.Del(ctx, key).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
