package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/internal/auth/session"
	"github.com/northarcade/gameauth/internal/auth/store"
	"github.com/northarcade/gameauth/pkg/cryptox"
	"github.com/northarcade/gameauth/pkg/slogx"
)

// AccountService owns direct registration, login, and logout.
type AccountService struct {
	Store    store.Store
	Sessions *session.Registry

	// MinPasswordLen and MaxImageBytes fall back to the package defaults
	// when zero.
	MinPasswordLen int
	MaxImageBytes  int
}

func (s *AccountService) minPasswordLen() int {
	if s.MinPasswordLen > 0 {
		return s.MinPasswordLen
	}
	return DefaultMinPasswordLen
}

func (s *AccountService) maxImageBytes() int {
	if s.MaxImageBytes > 0 {
		return s.MaxImageBytes
	}
	return DefaultMaxImageBytes
}

// Register creates an account directly, without the email verification
// round trip. The response token is a placeholder; the caller logs in
// separately.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (RegisterResponse, error) {
	email, err := normalizeRequiredEmail(req.Email, "email is required")
	if err != nil {
		return RegisterResponse{}, err
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		return RegisterResponse{}, domain.NewFault(domain.FaultInvalidRequest, "display name is required")
	}

	if err := validatePassword(req.Password, s.minPasswordLen()); err != nil {
		return RegisterResponse{}, err
	}
	if err := validateProfileImage(req.ProfileImageBytes, req.ProfileImageContentType, s.maxImageBytes()); err != nil {
		return RegisterResponse{}, err
	}

	taken, err := s.Store.Accounts().ExistsEmail(ctx, email)
	if err != nil {
		return RegisterResponse{}, err
	}
	if taken {
		return RegisterResponse{}, domain.NewFault(domain.FaultEmailTaken, "email is already registered")
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return RegisterResponse{}, domain.WrapFault(domain.FaultConfigError,
			"could not create account", "password hashing", err)
	}

	userID, err := s.Store.Accounts().CreateAccount(ctx, domain.Account{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Status:       domain.StatusActive,
		ImageBytes:   req.ProfileImageBytes,
		ImageType:    strings.TrimSpace(req.ProfileImageContentType),
	})
	if err != nil {
		// The pre-check races against concurrent registration; the unique
		// constraint is the authority.
		if errors.Is(err, store.ErrAlreadyExists) {
			return RegisterResponse{}, domain.NewFault(domain.FaultEmailTaken, "email is already registered")
		}
		return RegisterResponse{}, err
	}

	slogx.FromContext(ctx).Info("account registered", slog.Int64("user_id", userID))
	return RegisterResponse{UserID: userID}, nil
}

// Login verifies credentials, gates on account status, and issues a session
// token. Unknown email and wrong password are deliberately identical faults;
// status is only checked after the password matched.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return LoginResponse{}, domain.NewFault(domain.FaultInvalidCredentials, "invalid email or password")
	}

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResponse{}, domain.NewFault(domain.FaultInvalidCredentials, "invalid email or password")
		}
		return LoginResponse{}, err
	}

	// Passwords are never trimmed; padding makes them different passwords.
	if err := verifyPassword(req.Password, acc.PasswordHash); err != nil {
		return LoginResponse{}, err
	}

	if err := ensureLoginAllowed(acc.Status); err != nil {
		return LoginResponse{}, err
	}

	tok, err := s.Sessions.Issue(acc.ID)
	if err != nil {
		return LoginResponse{}, err
	}

	slogx.FromContext(ctx).Info("login", slog.Int64("user_id", acc.ID))
	return LoginResponse{Token: TokenPayload{
		UserID:       tok.UserID,
		Token:        tok.Token,
		ExpiresAtUTC: tok.ExpiresAt.UTC(),
	}}, nil
}

// Logout drops the caller's session. It never faults: unknown, blank, and
// already-removed tokens are silent no-ops, which makes retries harmless.
func (s *AccountService) Logout(ctx context.Context, req LogoutRequest) error {
	if rec, removed := s.Sessions.Remove(req.Token); removed {
		slogx.FromContext(ctx).Info("logout", slog.Int64("user_id", rec.UserID))
	}
	return nil
}
