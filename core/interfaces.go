package core

import "net/http"

// Ports define interfaces for external dependencies

// ============================================
// SESSION PORT
// ============================================

// SessionStore holds the current auth token and cached user profile.
// Token presence is the sole authentication signal the dispatcher reads.
//
// Implementations must treat token and user as one unit: set together,
// cleared together. Reads never fail - a corrupted stored profile degrades
// to "no session" rather than propagating an error.
type SessionStore interface {
	// Set stores token and user atomically.
	Set(token string, user *User) error
	// Token returns the stored token, or "" when no session exists.
	Token() string
	// User returns the cached profile, or nil when absent or corrupted.
	User() *User
	// Clear removes both entries. Idempotent.
	Clear() error
}

// ============================================
// TRANSPORT PORT
// ============================================

// Doer issues one HTTP exchange. *http.Client satisfies it; tests inject
// fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
