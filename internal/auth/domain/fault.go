package domain

import (
	"errors"
	"fmt"
)

// FaultCode is the stable machine-readable code attached to every domain
// fault. Clients switch on the code; the message is for humans.
type FaultCode string

const (
	FaultInvalidRequest     FaultCode = "INVALID_REQUEST"
	FaultInvalidCredentials FaultCode = "INVALID_CREDENTIALS"
	FaultEmailTaken         FaultCode = "EMAIL_TAKEN"
	FaultEmailNotFound      FaultCode = "EMAIL_NOT_FOUND"
	FaultWeakPassword       FaultCode = "WEAK_PASSWORD"
	FaultCodeMissing        FaultCode = "CODE_MISSING"
	FaultCodeExpired        FaultCode = "CODE_EXPIRED"
	FaultCodeInvalid        FaultCode = "CODE_INVALID"
	FaultTooSoon            FaultCode = "TOO_SOON"
	FaultAlreadyLoggedIn    FaultCode = "ALREADY_LOGGED_IN"
	FaultAccountInactive    FaultCode = "ACCOUNT_INACTIVE"
	FaultAccountSuspended   FaultCode = "ACCOUNT_SUSPENDED"
	FaultAccountBanned      FaultCode = "ACCOUNT_BANNED"
	FaultSMTPError          FaultCode = "SMTP_ERROR"
	FaultConfigError        FaultCode = "CONFIG_ERROR"
)

// Fault is a domain-level rejection. The Message is safe to show to the
// caller; the wrapped cause (if any) is for diagnostics only and must never
// be serialized to a client.
type Fault struct {
	Code    FaultCode
	Message string
	cause   error
}

func NewFault(code FaultCode, message string) *Fault {
	return &Fault{Code: code, Message: message}
}

// WrapFault attaches an internal cause to a fault. The ctx string and cause
// end up in logs, not responses.
func WrapFault(code FaultCode, message, ctx string, cause error) *Fault {
	if cause != nil {
		cause = fmt.Errorf("%s: %w", ctx, cause)
	}
	return &Fault{Code: code, Message: message, cause: cause}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Code, f.Message)
}

func (f *Fault) Unwrap() error { return f.cause }

// Is makes errors.Is match any two faults with the same code, so callers can
// compare against a sentinel like NewFault(FaultTooSoon, "").
func (f *Fault) Is(target error) bool {
	var other *Fault
	if !errors.As(target, &other) {
		return false
	}
	return f.Code == other.Code
}

// FaultCodeOf extracts the fault code from err, or "" when err is not a
// domain fault (infrastructure errors stay undistinguished on purpose).
func FaultCodeOf(err error) FaultCode {
	var f *Fault
	if errors.As(err, &f) {
		return f.Code
	}
	return ""
}

// IsFault reports whether err carries the given fault code.
func IsFault(err error, code FaultCode) bool {
	return FaultCodeOf(err) == code
}
