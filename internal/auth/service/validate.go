package service

import (
	"strings"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/internal/auth/session"
)

// normalizeRequiredEmail rejects blank emails and trims surrounding
// whitespace (tabs included). No case folding and no format checking: the
// address book is case-preserving and the mail transport is the arbiter of
// deliverability.
func normalizeRequiredEmail(email, missingMessage string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", domain.NewFault(domain.FaultInvalidRequest, missingMessage)
	}
	return trimmed, nil
}

// ensureValidUserID rejects non-positive ids.
func ensureValidUserID(id int64) error {
	if id <= 0 {
		return domain.NewFault(domain.FaultInvalidRequest, "user id must be positive")
	}
	return nil
}

// ensureCodeUsable fails when the challenge row was already consumed or its
// expiry has been reached. The boundary is inclusive: now == expiry is
// expired.
func ensureCodeUsable(now, expiresAt time.Time, used bool, expiredMessage string) error {
	if used || !now.Before(expiresAt) {
		return domain.NewFault(domain.FaultCodeExpired, expiredMessage)
	}
	return nil
}

// requireSession resolves a session token to its user id. Blank, padded,
// unknown, and expired tokens all fail identically; expired tokens are
// evicted from the registry as a side effect of the lookup.
func requireSession(reg *session.Registry, token string) (int64, error) {
	if strings.TrimSpace(token) == "" {
		return 0, domain.NewFault(domain.FaultInvalidCredentials, "invalid session")
	}
	userID, ok := reg.UserID(token)
	if !ok {
		return 0, domain.NewFault(domain.FaultInvalidCredentials, "invalid session")
	}
	return userID, nil
}
