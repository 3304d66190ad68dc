package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionFlagsArePowersOfTwo(t *testing.T) {
	seen := uint8(0)
	for _, p := range AllPermissions {
		v := uint8(p)
		assert.NotZero(t, v)
		assert.Zero(t, v&(v-1), "flag %d is not a power of two", v)
		assert.Zero(t, seen&v, "flag %d overlaps an earlier flag", v)
		seen |= v
	}
}

func TestRoleMaskOps(t *testing.T) {
	r := &Role{Name: "test"}

	assert.False(t, r.Has(PermWrite))

	r.Add(PermWrite)
	assert.True(t, r.Has(PermWrite))

	// add is idempotent
	mask := r.Mask
	r.Add(PermWrite)
	assert.Equal(t, mask, r.Mask)

	r.Add(PermFollow)
	assert.True(t, r.Has(PermFollow))
	assert.True(t, r.Has(PermWrite))

	r.Remove(PermWrite)
	assert.False(t, r.Has(PermWrite))
	assert.True(t, r.Has(PermFollow))

	// remove is a no-op when absent
	mask = r.Mask
	r.Remove(PermWrite)
	assert.Equal(t, mask, r.Mask)

	r.Reset()
	assert.Zero(t, r.Mask)
	for _, p := range AllPermissions {
		assert.False(t, r.Has(p))
	}
}

func TestHasRequiresEveryBit(t *testing.T) {
	r := &Role{}
	r.Add(PermFollow)
	r.Add(PermComment)

	both := PermFollow | PermComment
	assert.True(t, r.Has(both))

	r.Remove(PermComment)
	assert.False(t, r.Has(both))
}

func TestCanonicalAdministratorHoldsEveryBit(t *testing.T) {
	r := &Role{}
	for _, p := range CanonicalRoles()["Administrator"] {
		r.Add(p)
	}
	for _, p := range AllPermissions {
		assert.True(t, r.Has(p), "administrator missing %d", p)
	}
}
