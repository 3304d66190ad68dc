// Package auth is the access gate: an explicit Actor value (authenticated
// user or anonymous) checked against permission bits before any mutation.
// There is no ambient current-user state; handlers resolve an Actor and pass
// it down.
package auth

import (
	"Hey_Blog/internal/apperr"
	"Hey_Blog/internal/model"
)

// Actor is the acting identity for a request. The zero value is anonymous.
type Actor struct {
	user *model.User
}

func Anonymous() Actor { return Actor{} }

func Authenticated(u *model.User) Actor { return Actor{user: u} }

func (a Actor) IsAnonymous() bool { return a.user == nil }

// User returns the backing identity, nil for anonymous.
func (a Actor) User() *model.User { return a.user }

func (a Actor) UserID() uint64 {
	if a.user == nil {
		return 0
	}
	return a.user.ID
}

// Can reports whether the actor's role mask contains p. Anonymous actors and
// users without a loaded role always fail, including for PermAdmin. There is
// no admin override: the Administrator mask is seeded with every bit.
func Can(a Actor, p model.Permission) bool {
	if a.user == nil || a.user.Role == nil {
		return false
	}
	return a.user.Role.Has(p)
}

// Require short-circuits an action with a forbidden error when Can is false.
// Call it before touching storage.
func Require(a Actor, p model.Permission) error {
	if !Can(a, p) {
		return apperr.Forbidden("insufficient permissions")
	}
	return nil
}

func IsAdministrator(a Actor) bool {
	return Can(a, model.PermAdmin)
}

// CanModify implements the ownership composition rule: authors may edit their
// own content, and admins may edit anything. Ownership never substitutes for
// the capability bit on creation; this applies to edits only.
func CanModify(a Actor, ownerID uint64) bool {
	if a.user == nil {
		return false
	}
	return a.user.ID == ownerID || IsAdministrator(a)
}
