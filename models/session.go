package models

import "time"

// Session is a server-side record of an issued authentication token.
//
// The raw token handed to the client is never persisted; only its SHA-256
// digest (TokenHash) is stored, so a leaked sessions table cannot be replayed.
// A session is ACTIVE until its expiry elapses or it is explicitly revoked,
// after which it is terminal — there is no re-activation.
type Session struct {
	// SessionID identifies the session row.
	SessionID string `json:"-"`

	// AccountID is the account the session is bound to. Exactly one
	// account per session, fixed at creation.
	AccountID int64 `json:"-"`

	// TokenHash is the hex-encoded SHA-256 digest of the opaque token.
	TokenHash string `json:"-"`

	// IssuedAt is the creation timestamp.
	IssuedAt time.Time `json:"-"`

	// ExpiresAt is the moment after which validation fails.
	ExpiresAt time.Time `json:"-"`

	// RevokedAt is non-nil once the session has been explicitly revoked.
	RevokedAt *time.Time `json:"-"`
}

// Live reports whether the session is still valid at the given instant:
// not revoked and not past its expiry.
func (s Session) Live(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}
