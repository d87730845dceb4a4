// Package credentials is the single source of truth for persisted session
// credentials: the access/refresh token pair and the cached user profile.
package credentials

import (
	"github.com/stitchwork/go-erp-client/users"
)

// Store persists the bearer token pair and the last known user profile.
//
// Reads never fail: implementations degrade to zero values when the
// underlying storage is unavailable, so callers never special-case storage
// trouble. Writes report errors but callers are free to ignore them for the
// optimistic profile cache.
//
// Only the HTTP client's refresh protocol and explicit login/logout
// operations write tokens; everything else reads.
type Store interface {
	// AccessToken returns the stored access token, or "" if absent.
	AccessToken() string
	// RefreshToken returns the stored refresh token, or "" if absent.
	RefreshToken() string
	// SetTokens writes the token pair. A nil argument leaves the existing
	// value unchanged (partial update).
	SetTokens(access, refresh *string) error
	// Clear removes both tokens and the cached profile. A sequential caller
	// never observes a partially cleared store. Clearing an empty store is
	// a no-op.
	Clear() error
	// StoredUser returns the cached profile, or nil. The cache is for
	// optimistic UI only; /auth/me is authoritative.
	StoredUser() *users.User
	// SetStoredUser caches the profile. A nil user removes the cache entry.
	SetStoredUser(user *users.User) error
}
