package model

import "time"

// Permission is a single capability bit. Values are powers of two so a Role
// mask can hold any union of them.
type Permission uint8

const (
	PermFollow   Permission = 1 << iota // follow other users
	PermComment                         // comment on posts
	PermWrite                           // write posts
	PermModerate                        // moderate other users' comments
	PermAdmin                           // administer the site
)

// AllPermissions lists every defined bit, used by seeding and tests.
var AllPermissions = []Permission{PermFollow, PermComment, PermWrite, PermModerate, PermAdmin}

type Role struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"uniqueIndex;size:64;not null" json:"name"`
	Mask      uint8  `gorm:"not null;default:0" json:"mask"`
	Default   bool   `gorm:"not null;default:false;index" json:"default"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Role) TableName() string { return "roles" }

// Has reports whether every bit of p is set in the mask.
func (r *Role) Has(p Permission) bool {
	return r.Mask&uint8(p) == uint8(p)
}

// Add sets the bit; no-op when already present.
func (r *Role) Add(p Permission) {
	r.Mask |= uint8(p)
}

// Remove clears the bit; no-op when absent.
func (r *Role) Remove(p Permission) {
	r.Mask &^= uint8(p)
}

// Reset zeroes the mask.
func (r *Role) Reset() {
	r.Mask = 0
}

// DefaultRoleName is the role assigned to new accounts that don't match the
// configured admin address.
const DefaultRoleName = "User"

// CanonicalRoles maps role name to the permissions it carries. Administrator
// carries every defined bit, so an admin passes any permission check without
// a special-case override branch.
func CanonicalRoles() map[string][]Permission {
	return map[string][]Permission{
		DefaultRoleName: {PermFollow, PermComment, PermWrite},
		"Moderator":     {PermFollow, PermComment, PermWrite, PermModerate},
		"Administrator": {PermFollow, PermComment, PermWrite, PermModerate, PermAdmin},
	}
}
