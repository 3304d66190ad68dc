package redis_test

import (
	"context"
	"testing"
	"time"

	"Hey_Blog/internal/repository/redis"
	"Hey_Blog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	testutil.StartRedis(t)
	repo := &redis.SessionRepository{}
	ctx := context.Background()

	_, err := repo.Get(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)

	require.NoError(t, repo.Add(ctx, 1, "token-a"))

	token, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)

	// a new login replaces the stored token
	require.NoError(t, repo.Add(ctx, 1, "token-b"))
	token, err = repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "token-b", token)

	require.NoError(t, repo.Delete(ctx, 1))
	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)
}

func TestSessionIdleExpiryAndExtend(t *testing.T) {
	mr := testutil.StartRedis(t)
	repo := &redis.SessionRepository{}
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, "token-a"))

	// activity just before the window closes keeps the session alive
	mr.FastForward(redis.SessionTTL - time.Minute)
	require.NoError(t, repo.Extend(ctx, 1))
	mr.FastForward(redis.SessionTTL - time.Minute)

	token, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)

	// idle past the window drops it
	mr.FastForward(redis.SessionTTL + time.Minute)
	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrSessionNotFound)
}

func TestPendingEmailLastWriteWinsAndExpiry(t *testing.T) {
	mr := testutil.StartRedis(t)
	repo := &redis.EmailChangeRepository{}
	ctx := context.Background()

	_, err := repo.Get(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrNoPendingEmail)

	require.NoError(t, repo.Set(ctx, 1, "first@example.com", time.Hour))
	require.NoError(t, repo.Set(ctx, 1, "second@example.com", time.Hour))

	email, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", email)

	mr.FastForward(2 * time.Hour)
	_, err = repo.Get(ctx, 1)
	assert.ErrorIs(t, err, redis.ErrNoPendingEmail)
}
