package service

import "time"

// Request/response DTOs for the auth workflows. These are value shapes; the
// HTTP layer maps them 1:1 onto JSON bodies.

type RegisterRequest struct {
	Email                   string
	DisplayName             string
	Password                string
	ProfileImageBytes       []byte
	ProfileImageContentType string
}

// RegisterResponse carries the new user id. Token is a placeholder: direct
// registration does not log the user in, they authenticate via Login.
type RegisterResponse struct {
	UserID int64
	Token  string
}

type LoginRequest struct {
	Email    string
	Password string
}

type TokenPayload struct {
	UserID       int64
	Token        string
	ExpiresAtUTC time.Time
}

type LoginResponse struct {
	Token TokenPayload
}

type LogoutRequest struct {
	Token string
}

type BeginRegisterRequest struct {
	Email string
}

type BeginRegisterResponse struct {
	ResendAfterSeconds int
	ExpiresAtUTC       time.Time
}

type CompleteRegisterRequest struct {
	Email                   string
	DisplayName             string
	Password                string
	Code                    string
	ProfileImageBytes       []byte
	ProfileImageContentType string
}

type BeginPasswordResetRequest struct {
	Email string
}

type BeginPasswordResetResponse struct {
	ResendAfterSeconds int
	ExpiresAtUTC       time.Time
}

type CompletePasswordResetRequest struct {
	Email       string
	Code        string
	NewPassword string
}

type GetProfileImageRequest struct {
	Token            string
	AccountID        int64
	ProfileImageCode string
}

type GetProfileImageResponse struct {
	ImageBytes       []byte
	ContentType      string
	UpdatedAtUTC     *time.Time
	ProfileImageCode string
}
