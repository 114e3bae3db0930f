// Package auth holds the caller identity resolved from a bearer token and
// the single ownership-or-admin decision reused by every mutating operation.
package auth

type Identity struct {
	UserID   string
	Username string
	IsAdmin  bool
}

// Authorize reports whether the caller may act on a resource owned by
// ownerID. Admin overrides ownership; a nil identity is always refused.
// Pure decision, no I/O.
func Authorize(identity *Identity, ownerID string) bool {
	if identity == nil {
		return false
	}
	if identity.IsAdmin {
		return true
	}
	return identity.UserID == ownerID
}
