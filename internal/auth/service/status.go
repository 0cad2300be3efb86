package service

import "github.com/northarcade/gameauth/internal/auth/domain"

// ensureLoginAllowed gates login on the account status. It runs strictly
// after credential verification so status faults never leak for accounts the
// caller has not proven they own. Unknown status bytes behave as inactive.
func ensureLoginAllowed(status domain.AccountStatus) error {
	switch status {
	case domain.StatusActive:
		return nil
	case domain.StatusSuspended:
		return domain.NewFault(domain.FaultAccountSuspended, "account is suspended")
	case domain.StatusBanned:
		return domain.NewFault(domain.FaultAccountBanned, "account is banned")
	default:
		return domain.NewFault(domain.FaultAccountInactive, "account is not active")
	}
}
