package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/internal/auth/mail"
	"github.com/northarcade/gameauth/internal/auth/store"
	"github.com/northarcade/gameauth/pkg/cryptox"
	"github.com/northarcade/gameauth/pkg/slogx"
)

// VerificationService drives the begin/complete one-time-code workflows for
// registration and password reset. State lives only in the store; each call
// is a stateless pipeline over one request.
type VerificationService struct {
	Store  store.Store
	Mailer mail.Dispatcher

	// Zero values fall back to the package defaults.
	CodeTTL        time.Duration
	ResendCooldown time.Duration
	MinPasswordLen int
	MaxImageBytes  int

	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

func (s *VerificationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *VerificationService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

func (s *VerificationService) resendCooldown() time.Duration {
	if s.ResendCooldown > 0 {
		return s.ResendCooldown
	}
	return DefaultResendCooldown
}

func (s *VerificationService) minPasswordLen() int {
	if s.MinPasswordLen > 0 {
		return s.MinPasswordLen
	}
	return DefaultMinPasswordLen
}

func (s *VerificationService) maxImageBytes() int {
	if s.MaxImageBytes > 0 {
		return s.MaxImageBytes
	}
	return DefaultMaxImageBytes
}

// BeginRegister issues a registration code for a not-yet-registered email.
// The code row is persisted before the email goes out, so a transport
// failure surfaces as SMTP_ERROR while the code itself stays redeemable.
func (s *VerificationService) BeginRegister(ctx context.Context, req BeginRegisterRequest) (BeginRegisterResponse, error) {
	email, err := normalizeRequiredEmail(req.Email, "email is required")
	if err != nil {
		return BeginRegisterResponse{}, err
	}

	taken, err := s.Store.Accounts().ExistsEmail(ctx, email)
	if err != nil {
		return BeginRegisterResponse{}, err
	}
	if taken {
		return BeginRegisterResponse{}, domain.NewFault(domain.FaultEmailTaken, "email is already registered")
	}

	ch, err := s.issueCode(ctx, email, domain.PurposeRegister)
	if err != nil {
		return BeginRegisterResponse{}, err
	}

	return BeginRegisterResponse{
		ResendAfterSeconds: int(s.resendCooldown().Seconds()),
		ExpiresAtUTC:       ch.ExpiresAt.UTC(),
	}, nil
}

// BeginPasswordReset mirrors BeginRegister for an email that must already
// map to an account.
func (s *VerificationService) BeginPasswordReset(ctx context.Context, req BeginPasswordResetRequest) (BeginPasswordResetResponse, error) {
	email, err := normalizeRequiredEmail(req.Email, "email is required")
	if err != nil {
		return BeginPasswordResetResponse{}, err
	}

	exists, err := s.Store.Accounts().ExistsEmail(ctx, email)
	if err != nil {
		return BeginPasswordResetResponse{}, err
	}
	if !exists {
		return BeginPasswordResetResponse{}, domain.NewFault(domain.FaultEmailNotFound, "no account with that email")
	}

	ch, err := s.issueCode(ctx, email, domain.PurposePasswordReset)
	if err != nil {
		return BeginPasswordResetResponse{}, err
	}

	return BeginPasswordResetResponse{
		ResendAfterSeconds: int(s.resendCooldown().Seconds()),
		ExpiresAtUTC:       ch.ExpiresAt.UTC(),
	}, nil
}

// issueCode runs the shared cooldown/generate/persist/dispatch tail of both
// Begin workflows.
func (s *VerificationService) issueCode(ctx context.Context, email string, purpose domain.ChallengePurpose) (domain.CodeChallenge, error) {
	now := s.now()

	var lastRequest *time.Time
	last, err := s.Store.Challenges().LatestChallenge(ctx, email, purpose)
	switch {
	case err == nil:
		created := last.CreatedAt
		lastRequest = &created
	case errors.Is(err, store.ErrNotFound):
		// First request for this email, no cooldown applies.
	default:
		return domain.CodeChallenge{}, err
	}

	if err := ensureCooldownElapsed(now, lastRequest, s.resendCooldown()); err != nil {
		return domain.CodeChallenge{}, err
	}

	code, ch, err := newCodeChallenge(email, purpose, s.codeTTL(), now)
	if err != nil {
		return domain.CodeChallenge{}, err
	}

	// Persisting also retires the previous pending row for this email.
	id, err := s.Store.Challenges().CreateChallenge(ctx, ch)
	if err != nil {
		return domain.CodeChallenge{}, err
	}
	ch.ID = id

	if err := s.dispatch(ctx, email, purpose, code); err != nil {
		if mail.IsTransport(err) {
			slogx.FromContext(ctx).Warn("code email failed to send",
				slog.String("purpose", string(purpose)), slog.Any("error", err))
			// The persisted code stays valid; the caller may retry later or
			// redeem the code if the mail arrived after all.
			return domain.CodeChallenge{}, domain.WrapFault(domain.FaultSMTPError,
				"could not send the code email", "code dispatch", err)
		}
		// Non-transport failures are not ours to classify.
		return domain.CodeChallenge{}, err
	}

	slogx.FromContext(ctx).Info("code issued", slog.String("purpose", string(purpose)))
	return ch, nil
}

func (s *VerificationService) dispatch(ctx context.Context, email string, purpose domain.ChallengePurpose, code string) error {
	if purpose == domain.PurposePasswordReset {
		return s.Mailer.SendPasswordResetCode(ctx, email, code)
	}
	return s.Mailer.SendVerificationCode(ctx, email, code)
}

// CompleteRegister redeems a registration code and creates the account. A
// wrong code bumps the row's attempt counter; a used or expired row fails
// without touching the counter.
func (s *VerificationService) CompleteRegister(ctx context.Context, req CompleteRegisterRequest) (RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	displayName := strings.TrimSpace(req.DisplayName)
	code := strings.TrimSpace(req.Code)
	if email == "" || displayName == "" || strings.TrimSpace(req.Password) == "" || code == "" {
		return RegisterResponse{}, domain.NewFault(domain.FaultInvalidRequest,
			"email, display name, password, and code are required")
	}

	if err := validatePassword(req.Password, s.minPasswordLen()); err != nil {
		return RegisterResponse{}, err
	}

	ch, err := s.redeemChallenge(ctx, email, domain.PurposeRegister, code)
	if err != nil {
		return RegisterResponse{}, err
	}

	// The email may have been registered while the code was in flight.
	taken, err := s.Store.Accounts().ExistsEmail(ctx, email)
	if err != nil {
		return RegisterResponse{}, err
	}
	if taken {
		return RegisterResponse{}, domain.NewFault(domain.FaultEmailTaken, "email is already registered")
	}

	if err := validateProfileImage(req.ProfileImageBytes, req.ProfileImageContentType, s.maxImageBytes()); err != nil {
		return RegisterResponse{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return RegisterResponse{}, domain.WrapFault(domain.FaultConfigError,
			"could not create account", "password hashing", err)
	}

	var userID int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		userID, err = tx.Accounts().CreateAccount(ctx, domain.Account{
			Email:        email,
			DisplayName:  displayName,
			PasswordHash: hash,
			Status:       domain.StatusActive,
			ImageBytes:   req.ProfileImageBytes,
			ImageType:    strings.TrimSpace(req.ProfileImageContentType),
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.NewFault(domain.FaultEmailTaken, "email is already registered")
			}
			return err
		}
		return tx.Challenges().MarkChallengeUsed(ctx, ch.ID)
	})
	if err != nil {
		return RegisterResponse{}, err
	}

	slogx.FromContext(ctx).Info("registration completed", slog.Int64("user_id", userID))
	return RegisterResponse{UserID: userID}, nil
}

// CompletePasswordReset redeems a reset code and overwrites the stored
// password hash.
func (s *VerificationService) CompletePasswordReset(ctx context.Context, req CompletePasswordResetRequest) error {
	email := strings.TrimSpace(req.Email)
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" || strings.TrimSpace(req.NewPassword) == "" {
		return domain.NewFault(domain.FaultInvalidRequest, "email, code, and new password are required")
	}

	if err := validatePassword(req.NewPassword, s.minPasswordLen()); err != nil {
		return err
	}

	ch, err := s.redeemChallenge(ctx, email, domain.PurposePasswordReset, code)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(req.NewPassword)
	if err != nil {
		return domain.WrapFault(domain.FaultConfigError,
			"could not update password", "password hashing", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().UpdatePasswordHash(ctx, email, hash); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.NewFault(domain.FaultEmailNotFound, "no account with that email")
			}
			return err
		}
		return tx.Challenges().MarkChallengeUsed(ctx, ch.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset completed")
	return nil
}

// redeemChallenge loads the latest challenge row for the email and verifies
// the submitted code against it. Fault precedence: no row ever created is
// CODE_MISSING, a used or expired row is CODE_EXPIRED (no attempt counted),
// a live row with the wrong code increments attempts and is CODE_INVALID.
func (s *VerificationService) redeemChallenge(ctx context.Context, email string, purpose domain.ChallengePurpose, code string) (domain.CodeChallenge, error) {
	ch, err := s.Store.Challenges().LatestChallenge(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CodeChallenge{}, domain.NewFault(domain.FaultCodeMissing, "no code was requested for this email")
		}
		return domain.CodeChallenge{}, err
	}

	if err := ensureCodeUsable(s.now(), ch.ExpiresAt, ch.Used, "the code has expired, request a new one"); err != nil {
		return domain.CodeChallenge{}, err
	}

	if cryptox.Verify(code, ch.CodeHash) != nil {
		if err := s.Store.Challenges().IncrementAttempts(ctx, ch.ID); err != nil {
			return domain.CodeChallenge{}, err
		}
		return domain.CodeChallenge{}, domain.NewFault(domain.FaultCodeInvalid, "the code is not correct")
	}
	return ch, nil
}
