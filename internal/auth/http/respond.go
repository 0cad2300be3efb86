package http

import (
	"errors"
	"net/http"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/pkg/httpx"
	"github.com/northarcade/gameauth/pkg/slogx"
)

// statusFor maps a fault code onto an HTTP status. Unknown codes surface as
// a generic 500 without detail.
func statusFor(code domain.FaultCode) int {
	switch code {
	case domain.FaultInvalidRequest, domain.FaultWeakPassword,
		domain.FaultCodeMissing, domain.FaultCodeExpired, domain.FaultCodeInvalid:
		return http.StatusBadRequest
	case domain.FaultInvalidCredentials:
		return http.StatusUnauthorized
	case domain.FaultAccountInactive, domain.FaultAccountSuspended, domain.FaultAccountBanned:
		return http.StatusForbidden
	case domain.FaultEmailNotFound:
		return http.StatusNotFound
	case domain.FaultEmailTaken, domain.FaultAlreadyLoggedIn:
		return http.StatusConflict
	case domain.FaultTooSoon:
		return http.StatusTooManyRequests
	case domain.FaultSMTPError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError serializes an error. Domain faults expose their code and
// message; anything else is logged with its cause and reported as a bare
// server_error so infrastructure detail never reaches a client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fault *domain.Fault
	if errors.As(err, &fault) {
		httpx.WriteJSON(w, statusFor(fault.Code), map[string]string{
			"error":             string(fault.Code),
			"error_description": fault.Message,
		})
		if cause := fault.Unwrap(); cause != nil {
			slogx.FromContext(r.Context()).Error("fault with internal cause",
				"code", string(fault.Code), "error", cause)
		}
		return
	}

	slogx.FromContext(r.Context()).Error("unhandled error", "error", err)
	httpx.WriteJSON(w, http.StatusInternalServerError, map[string]string{
		"error":             "server_error",
		"error_description": "something went wrong",
	})
}

func writeBadBody(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{
		"error":             string(domain.FaultInvalidRequest),
		"error_description": "request body must be valid JSON",
	})
}
