package service

import (
	"fmt"
	"strings"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/pkg/cryptox"
)

// DefaultMinPasswordLen applies when a service is constructed without an
// explicit minimum.
const DefaultMinPasswordLen = 8

// validatePassword enforces the strength policy. Whitespace-only passwords
// count as blank.
func validatePassword(password string, minLen int) error {
	if strings.TrimSpace(password) == "" || len(password) < minLen {
		return domain.NewFault(domain.FaultWeakPassword,
			fmt.Sprintf("password must be at least %d characters", minLen))
	}
	return nil
}

// verifyPassword checks a plaintext against the stored hash. A missing or
// malformed hash and a plain mismatch are indistinguishable to the caller.
func verifyPassword(password, storedHash string) error {
	if strings.TrimSpace(storedHash) == "" {
		return domain.NewFault(domain.FaultInvalidCredentials, "invalid email or password")
	}
	if err := cryptox.Verify(password, storedHash); err != nil {
		return domain.NewFault(domain.FaultInvalidCredentials, "invalid email or password")
	}
	return nil
}
