package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(PurposeConfirm, 42, time.Hour)
	require.NoError(t, err)

	id, err := svc.Verify(token, PurposeConfirm)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)
}

func TestTokenExpiry(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(PurposeReset, 7, -time.Second)
	require.NoError(t, err)

	_, err = svc.Verify(token, PurposeReset)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenPurposeIsolation(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(PurposeConfirm, 7, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token, PurposeReset)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// still fine for its own purpose
	id, err := svc.Verify(token, PurposeConfirm)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
}

func TestTokenTamperAndTruncation(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue(PurposeAuth, 7, time.Hour)
	require.NoError(t, err)

	_, err = svc.Verify(token[:len(token)-10], PurposeAuth)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify("not-a-token", PurposeAuth)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Verify("", PurposeAuth)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenSecretMismatch(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue(PurposeAuth, 7, time.Hour)
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token, PurposeAuth)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
