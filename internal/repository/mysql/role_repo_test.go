package mysql_test

import (
	"context"
	"testing"

	"Hey_Blog/internal/model"
	"Hey_Blog/internal/repository/mysql"
	"Hey_Blog/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCreatesCanonicalRoles(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := &mysql.RoleRepository{DB: db}
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	byName := map[string]model.Role{}
	for _, r := range roles {
		byName[r.Name] = r
	}

	user := byName["User"]
	assert.True(t, user.Has(model.PermFollow))
	assert.True(t, user.Has(model.PermComment))
	assert.True(t, user.Has(model.PermWrite))
	assert.False(t, user.Has(model.PermModerate))
	assert.True(t, user.Default)

	mod := byName["Moderator"]
	assert.True(t, mod.Has(model.PermModerate))
	assert.False(t, mod.Has(model.PermAdmin))
	assert.False(t, mod.Default)

	admin := byName["Administrator"]
	for _, p := range model.AllPermissions {
		assert.True(t, admin.Has(p))
	}
	assert.False(t, admin.Default)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := &mysql.RoleRepository{DB: db}
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))

	// drift: stale mask and a stray default flag
	mod, err := repo.FindByName(ctx, "Moderator")
	require.NoError(t, err)
	mod.Add(model.PermAdmin)
	mod.Default = true
	require.NoError(t, db.Save(mod).Error)

	require.NoError(t, repo.Seed(ctx))

	roles, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	defaults := 0
	for _, r := range roles {
		if r.Default {
			defaults++
			assert.Equal(t, model.DefaultRoleName, r.Name)
		}
		if r.Name == "Moderator" {
			assert.False(t, r.Has(model.PermAdmin))
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestFindDefault(t *testing.T) {
	db := testutil.OpenDB(t)
	repo := &mysql.RoleRepository{DB: db}
	ctx := context.Background()

	require.NoError(t, repo.Seed(ctx))

	role, err := repo.FindDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultRoleName, role.Name)
}
