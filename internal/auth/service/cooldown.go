package service

import (
	"fmt"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
)

// DefaultResendCooldown applies when no cooldown is configured.
const DefaultResendCooldown = 60 * time.Second

// ensureCooldownElapsed decides whether a new one-time code may be issued.
// No prior request passes unconditionally. The boundary is inclusive:
// exactly cooldown elapsed is allowed. A last-request timestamp in the
// future (clock skew) counts as too soon.
func ensureCooldownElapsed(now time.Time, lastRequest *time.Time, cooldown time.Duration) error {
	if lastRequest == nil {
		return nil
	}

	elapsed := now.Sub(*lastRequest)
	if elapsed >= cooldown {
		return nil
	}

	remaining := int((cooldown - elapsed).Seconds())
	if remaining < 1 {
		remaining = 1
	}
	return domain.NewFault(domain.FaultTooSoon,
		fmt.Sprintf("a code was sent recently, try again in %d seconds", remaining))
}
