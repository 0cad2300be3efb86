package domain

import "time"

// AccountStatus is the persisted status byte. Any value outside the known
// set behaves as StatusInactive.
type AccountStatus uint8

const (
	StatusInactive  AccountStatus = 0
	StatusActive    AccountStatus = 1
	StatusSuspended AccountStatus = 2
	StatusBanned    AccountStatus = 3
)

type Account struct {
	ID           int64
	Email        string // unique, case-preserving
	DisplayName  string
	PasswordHash string // bcrypt encoded
	Status       AccountStatus

	// Optional profile image. ImageUpdatedAt is nil when no image is stored.
	ImageBytes     []byte
	ImageType      string
	ImageUpdatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasImage reports whether a profile image is stored for the account.
func (a Account) HasImage() bool {
	return len(a.ImageBytes) > 0
}
