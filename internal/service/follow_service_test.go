package service_test

import (
	"context"
	"testing"

	"Hey_Blog/internal/apperr"
	"Hey_Blog/internal/auth"
	"Hey_Blog/internal/model"
	"Hey_Blog/internal/service"
	"Hey_Blog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFollowFixture(t *testing.T) (*service.FollowService, *gorm.DB, *model.User, *model.User) {
	t.Helper()
	db := testutil.OpenDB(t)
	testutil.SeedRoles(t, db)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com", "User")
	return service.NewFollowService(db, 10), db, alice, bob
}

func TestFollowRequiresPermission(t *testing.T) {
	svc, _, alice, bob := newFollowFixture(t)
	ctx := context.Background()

	_, err := svc.Follow(ctx, auth.Anonymous(), bob.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	_, err = svc.Follow(ctx, actorWithout(alice, model.PermFollow), bob.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))
}

func TestFollowUnknownTarget(t *testing.T) {
	svc, _, alice, _ := newFollowFixture(t)

	_, err := svc.Follow(context.Background(), auth.Authenticated(alice), 12345)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestFollowAndRepeat(t *testing.T) {
	svc, _, alice, bob := newFollowFixture(t)
	ctx := context.Background()

	changed, err := svc.Follow(ctx, auth.Authenticated(alice), bob.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = svc.Follow(ctx, auth.Authenticated(alice), bob.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	ok, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// the relation is directed
	ok, err = svc.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSelfFollowAndSelfUnfollowAreNoOps(t *testing.T) {
	svc, _, alice, _ := newFollowFixture(t)
	ctx := context.Background()
	actor := auth.Authenticated(alice)

	changed, err := svc.Follow(ctx, actor, alice.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = svc.Unfollow(ctx, actor, alice.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	// the structural self edge survives
	ok, err := svc.IsFollowing(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnfollow(t *testing.T) {
	svc, _, alice, bob := newFollowFixture(t)
	ctx := context.Background()
	actor := auth.Authenticated(alice)

	// missing edge is a no-op
	changed, err := svc.Unfollow(ctx, actor, bob.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = svc.Follow(ctx, actor, bob.ID)
	require.NoError(t, err)

	changed, err = svc.Unfollow(ctx, actor, bob.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	ok, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowerListings(t *testing.T) {
	svc, db, alice, bob := newFollowFixture(t)
	carol := testutil.CreateUser(t, db, "carol", "carol@example.com", "User")
	ctx := context.Background()

	_, err := svc.Follow(ctx, auth.Authenticated(alice), bob.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, auth.Authenticated(carol), bob.ID)
	require.NoError(t, err)

	followers, total, err := svc.Followers(ctx, bob.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, followers, 2)

	following, total, err := svc.Following(ctx, bob.ID, 1)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, following)
}
