// Package mail sends one-time codes to players. Transport failures are
// reported as a distinct error type so the services can translate exactly
// those into an SMTP fault and let anything else propagate untouched.
package mail

import (
	"context"
	"errors"
	"fmt"
)

// Dispatcher delivers one-time codes. Implementations may fail with a
// *TransportError (the send itself broke) or any other error (the message
// could not even be constructed).
type Dispatcher interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

// TransportError marks a delivery failure at the SMTP transport level.
type TransportError struct {
	cause error
}

func NewTransportError(cause error) *TransportError {
	return &TransportError{cause: cause}
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mail transport failure: %v", e.cause)
}

func (e *TransportError) Unwrap() error { return e.cause }

// IsTransport reports whether err is (or wraps) a transport-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
