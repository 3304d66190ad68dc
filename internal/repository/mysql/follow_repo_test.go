package mysql_test

import (
	"context"
	"testing"

	"Hey_Blog/internal/model"
	"Hey_Blog/internal/repository/mysql"
	"Hey_Blog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func followFixture(t *testing.T) (*gorm.DB, *mysql.FollowRepository, *model.User, *model.User) {
	t.Helper()
	db := testutil.OpenDB(t)
	testutil.SeedRoles(t, db)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com", "User")
	return db, &mysql.FollowRepository{DB: db}, alice, bob
}

func TestFollowIsIdempotent(t *testing.T) {
	db, repo, alice, bob := followFixture(t)
	ctx := context.Background()

	changed, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// one edge, one outbox event
	var edges int64
	require.NoError(t, db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", alice.ID, bob.ID).
		Count(&edges).Error)
	assert.EqualValues(t, 1, edges)

	var events int64
	require.NoError(t, db.Model(&model.FollowOutbox{}).
		Where("event_type = ?", "follow").Count(&events).Error)
	assert.EqualValues(t, 1, events)
}

func TestUnfollowMissingEdgeIsNoOp(t *testing.T) {
	db, repo, alice, bob := followFixture(t)
	ctx := context.Background()

	changed, err := repo.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	var events int64
	require.NoError(t, db.Model(&model.FollowOutbox{}).Count(&events).Error)
	assert.Zero(t, events)

	_, err = repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	changed, err = repo.Unfollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	following, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestDirectionality(t *testing.T) {
	_, repo, alice, bob := followFixture(t)
	ctx := context.Background()

	_, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	following, err := repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, following)

	followedBy, err := repo.IsFollowedBy(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, followedBy)
}

func TestListingsExcludeSelfEdge(t *testing.T) {
	_, repo, alice, bob := followFixture(t)
	ctx := context.Background()

	// registration created a self edge for both users
	self, err := repo.IsFollowing(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, self)

	_, err = repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	followers, total, err := repo.Followers(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	following, total, err := repo.Following(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	// bob follows nobody but himself
	following, total, err = repo.Following(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, following)
}

func TestFollowedPostsIncludesOwnViaSelfEdge(t *testing.T) {
	db, repo, alice, bob := followFixture(t)
	carol := testutil.CreateUser(t, db, "carol", "carol@example.com", "User")
	ctx := context.Background()

	posts := &mysql.PostRepository{DB: db}
	mine := &model.Post{AuthorID: alice.ID, Body: "mine"}
	theirs := &model.Post{AuthorID: bob.ID, Body: "theirs"}
	unrelated := &model.Post{AuthorID: carol.ID, Body: "unrelated"}
	for _, p := range []*model.Post{mine, theirs, unrelated} {
		require.NoError(t, posts.Create(ctx, p))
	}

	_, err := repo.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	timeline, total, err := repo.FollowedPosts(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	ids := map[uint64]bool{}
	for _, p := range timeline {
		ids[p.ID] = true
	}
	assert.True(t, ids[mine.ID])
	assert.True(t, ids[theirs.ID])
	assert.False(t, ids[unrelated.ID])
}
