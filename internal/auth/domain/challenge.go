package domain

import "time"

// ChallengePurpose distinguishes registration verification rows from
// password reset rows. Both share the same shape and lifecycle.
type ChallengePurpose string

const (
	PurposeRegister      ChallengePurpose = "register"
	PurposePasswordReset ChallengePurpose = "password_reset"
)

// CodeChallenge is a persisted one-time-code row. Only the latest pending
// row per (email, purpose) is meaningful: creating a new one retires the
// previous pending row.
type CodeChallenge struct {
	ID        int64
	Email     string
	Purpose   ChallengePurpose
	CodeHash  string // bcrypt of the numeric code; the code itself is never stored
	ExpiresAt time.Time
	Used      bool
	Attempts  int
	CreatedAt time.Time
}
