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

func newPostFixture(t *testing.T) (*service.PostService, *gorm.DB) {
	t.Helper()
	db := testutil.OpenDB(t)
	testutil.SeedRoles(t, db)
	return service.NewPostService(db, 20), db
}

// an authenticated actor whose role lacks the named permissions
func actorWithout(u *model.User, dropped ...model.Permission) auth.Actor {
	stripped := *u
	role := *u.Role
	for _, p := range dropped {
		role.Remove(p)
	}
	stripped.Role = &role
	return auth.Authenticated(&stripped)
}

func TestCreatePostRequiresWrite(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")
	ctx := context.Background()

	_, err := svc.Create(ctx, auth.Anonymous(), "hello")
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	_, err = svc.Create(ctx, actorWithout(alice, model.PermWrite), "hello")
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	post, err := svc.Create(ctx, auth.Authenticated(alice), "hello")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, post.AuthorID)
}

func TestCreatePostSanitizesBody(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")
	ctx := context.Background()

	post, err := svc.Create(ctx, auth.Authenticated(alice), "<script>x</script>**bold**")
	require.NoError(t, err)

	assert.Equal(t, "<script>x</script>**bold**", post.Body)
	assert.NotContains(t, post.BodyHTML, "<script")
	assert.Contains(t, post.BodyHTML, "<strong>bold</strong>")

	// the stored rendering matches what was returned
	got, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.BodyHTML, got.BodyHTML)
}

func TestCreatePostRejectsEmptyBody(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")

	_, err := svc.Create(context.Background(), auth.Authenticated(alice), "   ")
	assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com", "User")
	admin := testutil.CreateUser(t, db, "root", "root@example.com", "Administrator")
	ctx := context.Background()

	post, err := svc.Create(ctx, auth.Authenticated(alice), "original")
	require.NoError(t, err)

	_, err = svc.Update(ctx, auth.Authenticated(bob), post.ID, "hijacked")
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	updated, err := svc.Update(ctx, auth.Authenticated(alice), post.ID, "*edited*")
	require.NoError(t, err)
	assert.Contains(t, updated.BodyHTML, "<em>edited</em>")

	// administrators may edit anyone's post
	_, err = svc.Update(ctx, auth.Authenticated(admin), post.ID, "moderated")
	require.NoError(t, err)
}

func TestGetPostNotFound(t *testing.T) {
	svc, _ := newPostFixture(t)

	_, err := svc.Get(context.Background(), 12345)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestTimelineFollowsTheGraph(t *testing.T) {
	svc, db := newPostFixture(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com", "User")
	bob := testutil.CreateUser(t, db, "bob", "bob@example.com", "User")
	carol := testutil.CreateUser(t, db, "carol", "carol@example.com", "User")
	ctx := context.Background()

	_, err := svc.Create(ctx, auth.Authenticated(alice), "by alice")
	require.NoError(t, err)
	_, err = svc.Create(ctx, auth.Authenticated(bob), "by bob")
	require.NoError(t, err)
	_, err = svc.Create(ctx, auth.Authenticated(carol), "by carol")
	require.NoError(t, err)

	follows := service.NewFollowService(db, 10)
	_, err = follows.Follow(ctx, auth.Authenticated(alice), bob.ID)
	require.NoError(t, err)

	posts, total, err := svc.Timeline(ctx, alice.ID, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	bodies := map[string]bool{}
	for _, p := range posts {
		bodies[p.Body] = true
	}
	assert.True(t, bodies["by alice"])
	assert.True(t, bodies["by bob"])
	assert.False(t, bodies["by carol"])
}
