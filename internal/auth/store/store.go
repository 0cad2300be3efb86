package store

import (
	"context"
	"errors"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep the surface tidy; multi-step writes
// that must be atomic are exposed as single repository calls so the service
// layer never has to reason about driver transactions.
type Store interface {
	Accounts() Accounts
	Challenges() Challenges

	ApplyMigrations() error

	// WithTx executes fn within a transaction; rollback on error, commit on
	// nil. Used for the combined complete-register write (account + mark
	// challenge used).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Accounts() Accounts
	Challenges() Challenges
}

type Accounts interface {
	// CreateAccount inserts the account and its user row atomically and
	// returns the new numeric id. ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) (int64, error)

	// GetAccountByEmail is the login lookup (exact, case-preserving match).
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)

	// ExistsEmail is the cheap pre-check used by the register workflows.
	ExistsEmail(ctx context.Context, email string) (bool, error)

	// UpdatePasswordHash overwrites the stored hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, email string, newHash string) error

	// GetProfileImage returns the stored image payload for an account.
	// Accounts without an image return an empty payload, not ErrNotFound.
	GetProfileImage(ctx context.Context, id int64) (data []byte, contentType string, updatedAt *time.Time, err error)

	UpdateProfileImage(ctx context.Context, id int64, data []byte, contentType string) error
}

type Challenges interface {
	// CreateChallenge persists a new one-time-code row and retires any prior
	// pending row for the same email and purpose in the same statement batch.
	CreateChallenge(ctx context.Context, c domain.CodeChallenge) (int64, error)

	// LatestChallenge returns the most recently created row for the email
	// and purpose, used or not. ErrNotFound when none was ever created.
	LatestChallenge(ctx context.Context, email string, purpose domain.ChallengePurpose) (domain.CodeChallenge, error)

	MarkChallengeUsed(ctx context.Context, id int64) error

	// IncrementAttempts bumps the attempt counter by exactly one.
	IncrementAttempts(ctx context.Context, id int64) error
}
