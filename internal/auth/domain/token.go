package domain

import "time"

// SessionToken is an opaque server-side session record. The token value is
// 32 lowercase hex characters (128 bits of entropy), compared byte-for-byte
// on lookup.
type SessionToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t SessionToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
