package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashingRoundTrip(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("cat"))

	assert.NotEmpty(t, u.PasswordHash)
	assert.NotContains(t, u.PasswordHash, "cat")
	assert.True(t, u.VerifyPassword("cat"))
	assert.False(t, u.VerifyPassword("dog"))
}

func TestPasswordIsNotReadable(t *testing.T) {
	u := &User{}
	require.NoError(t, u.SetPassword("cat"))

	_, err := u.Password()
	assert.ErrorIs(t, err, ErrPasswordNotReadable)
}

func TestPasswordSaltsAreRandom(t *testing.T) {
	a, b := &User{}, &User{}
	require.NoError(t, a.SetPassword("cat"))
	require.NoError(t, b.SetPassword("cat"))
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestGravatarHash(t *testing.T) {
	// md5 is case- and whitespace-insensitive over the address
	assert.Equal(t, GravatarHash("john@example.com"), GravatarHash("  JOHN@example.COM "))

	u := &User{Email: "john@example.com", AvatarHash: GravatarHash("john@example.com")}
	url := u.AvatarURL(128)
	assert.Contains(t, url, u.AvatarHash)
	assert.Contains(t, url, "s=128")
}
