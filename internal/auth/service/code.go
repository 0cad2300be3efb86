package service

import (
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/pkg/cryptox"
)

const (
	// codeLength is the number of digits in an emailed one-time code.
	codeLength = 6

	// DefaultCodeTTL applies when no TTL is configured.
	DefaultCodeTTL = 15 * time.Minute
)

// newCodeChallenge generates a fresh one-time code plus its persistable row.
// The plaintext code exists only in the return value; the row carries its
// bcrypt hash and expiry.
func newCodeChallenge(email string, purpose domain.ChallengePurpose, ttl time.Duration, now time.Time) (string, domain.CodeChallenge, error) {
	code, err := cryptox.GenerateNumericCode(codeLength)
	if err != nil {
		return "", domain.CodeChallenge{}, domain.WrapFault(domain.FaultConfigError,
			"could not create verification code", "code generation", err)
	}

	hash, err := cryptox.HashPassword(code)
	if err != nil {
		return "", domain.CodeChallenge{}, domain.WrapFault(domain.FaultConfigError,
			"could not create verification code", "code hashing", err)
	}

	return code, domain.CodeChallenge{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  hash,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}
