package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/internal/auth/mail"
	"github.com/northarcade/gameauth/internal/auth/session"
	"github.com/northarcade/gameauth/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

type verificationFixture struct {
	svc    *VerificationService
	store  *sqlite.Store
	mailer *fakeMailer
	clock  *time.Time
}

func newVerificationFixture(t *testing.T) *verificationFixture {
	t.Helper()

	st := newTestStore(t)
	mailer := &fakeMailer{}
	now := time.Now().UTC().Truncate(time.Second)

	f := &verificationFixture{store: st, mailer: mailer, clock: &now}
	f.svc = &VerificationService{
		Store:          st,
		Mailer:         mailer,
		CodeTTL:        15 * time.Minute,
		ResendCooldown: 60 * time.Second,
		Now:            func() time.Time { return *f.clock },
	}
	return f
}

func (f *verificationFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func TestBeginRegisterIssuesCode(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	resp, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: " user@test.local "})
	require.NoError(t, err)
	require.Equal(t, 60, resp.ResendAfterSeconds)
	require.Equal(t, f.clock.Add(15*time.Minute), resp.ExpiresAtUTC)

	code := f.mailer.lastVerificationCode(t)
	require.Regexp(t, `^[0-9]{6}$`, code)

	row, err := f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
	require.NoError(t, err)
	require.False(t, row.Used)
	require.NotEqual(t, code, row.CodeHash)
}

func TestBeginRegisterCooldown(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
	require.NoError(t, err)

	t.Run("second request inside the window fails", func(t *testing.T) {
		f.advance(59 * time.Second)
		_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
		require.True(t, domain.IsFault(err, domain.FaultTooSoon))
	})

	t.Run("exactly the cooldown passes and retires the old code", func(t *testing.T) {
		f.advance(1 * time.Second)
		_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
		require.NoError(t, err)
		require.Len(t, f.mailer.verificationCodes, 2)

		// The first code's row is now used; completing with the old code
		// fails against the fresh row.
		oldCode := f.mailer.verificationCodes[0]
		_, err = f.svc.CompleteRegister(ctx, CompleteRegisterRequest{
			Email: "user@test.local", DisplayName: "P", Password: "longenough", Code: oldCode,
		})
		require.Error(t, err)
		code := domain.FaultCodeOf(err)
		require.Contains(t, []domain.FaultCode{domain.FaultCodeInvalid, domain.FaultCodeExpired}, code)
	})
}

func TestBeginRegisterEmailTaken(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	accounts := &AccountService{Store: f.store, Sessions: session.New(time.Hour)}
	_, err := accounts.Register(ctx, RegisterRequest{
		Email: "taken@test.local", DisplayName: "T", Password: "longenough",
	})
	require.NoError(t, err)

	_, err = f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "taken@test.local"})
	require.True(t, domain.IsFault(err, domain.FaultEmailTaken))
}

func TestBeginRegisterSMTPFailureKeepsCode(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	f.mailer.failWith = mail.NewTransportError(errors.New("connection refused"))
	_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
	require.True(t, domain.IsFault(err, domain.FaultSMTPError))

	// The row was persisted before dispatch and is still redeemable.
	row, err := f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
	require.NoError(t, err)
	require.False(t, row.Used)
}

func TestBeginRegisterNonTransportFailurePropagates(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	odd := errors.New("recipient parse failure")
	f.mailer.failWith = odd

	_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
	require.ErrorIs(t, err, odd)
	require.Empty(t, domain.FaultCodeOf(err), "non-transport failures must not become domain faults")
}

func TestCompleteRegister(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
	require.NoError(t, err)
	code := f.mailer.lastVerificationCode(t)

	valid := CompleteRegisterRequest{
		Email:       "user@test.local",
		DisplayName: " Player One ",
		Password:    "longenough",
		Code:        code,
	}

	t.Run("combined required-field check", func(t *testing.T) {
		for _, req := range []CompleteRegisterRequest{
			{DisplayName: "P", Password: "longenough", Code: code},
			{Email: "user@test.local", Password: "longenough", Code: code},
			{Email: "user@test.local", DisplayName: "P", Code: code},
			{Email: "user@test.local", DisplayName: "P", Password: "longenough"},
		} {
			_, err := f.svc.CompleteRegister(ctx, req)
			require.True(t, domain.IsFault(err, domain.FaultInvalidRequest))
		}
	})

	t.Run("no challenge row is CODE_MISSING", func(t *testing.T) {
		req := valid
		req.Email = "other@test.local"
		_, err := f.svc.CompleteRegister(ctx, req)
		require.True(t, domain.IsFault(err, domain.FaultCodeMissing))
	})

	t.Run("wrong code increments attempts", func(t *testing.T) {
		req := valid
		req.Code = "000000"
		if req.Code == code {
			req.Code = "000001"
		}

		_, err := f.svc.CompleteRegister(ctx, req)
		require.True(t, domain.IsFault(err, domain.FaultCodeInvalid))

		row, err := f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
		require.NoError(t, err)
		require.Equal(t, 1, row.Attempts)
		require.False(t, row.Used)

		_, err = f.svc.CompleteRegister(ctx, req)
		require.True(t, domain.IsFault(err, domain.FaultCodeInvalid))
		row, err = f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
		require.NoError(t, err)
		require.Equal(t, 2, row.Attempts)
	})

	t.Run("success creates account and consumes the code", func(t *testing.T) {
		resp, err := f.svc.CompleteRegister(ctx, valid)
		require.NoError(t, err)
		require.Positive(t, resp.UserID)

		acc, err := f.store.Accounts().GetAccountByEmail(ctx, "user@test.local")
		require.NoError(t, err)
		require.Equal(t, "Player One", acc.DisplayName, "display name is trimmed")
		require.False(t, acc.HasImage())

		// Reuse of a consumed code is CODE_EXPIRED, not CODE_INVALID, and
		// does not move the attempt counter.
		row, err := f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
		require.NoError(t, err)
		attemptsBefore := row.Attempts

		_, err = f.svc.CompleteRegister(ctx, valid)
		require.True(t, domain.IsFault(err, domain.FaultCodeExpired))

		row, err = f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
		require.NoError(t, err)
		require.Equal(t, attemptsBefore, row.Attempts)
	})
}

func TestCompleteRegisterExpiredCode(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "user@test.local"})
	require.NoError(t, err)
	code := f.mailer.lastVerificationCode(t)

	// Exactly at expiry counts as expired and does not touch attempts.
	f.advance(15 * time.Minute)
	_, err = f.svc.CompleteRegister(ctx, CompleteRegisterRequest{
		Email: "user@test.local", DisplayName: "P", Password: "longenough", Code: code,
	})
	require.True(t, domain.IsFault(err, domain.FaultCodeExpired))

	row, err := f.store.Challenges().LatestChallenge(ctx, "user@test.local", domain.PurposeRegister)
	require.NoError(t, err)
	require.Zero(t, row.Attempts)
	require.False(t, row.Used)
}

func TestCompleteRegisterWithProfileImage(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	_, err := f.svc.BeginRegister(ctx, BeginRegisterRequest{Email: "img@test.local"})
	require.NoError(t, err)

	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 24)...)
	resp, err := f.svc.CompleteRegister(ctx, CompleteRegisterRequest{
		Email:                   "img@test.local",
		DisplayName:             "Img",
		Password:                "longenough",
		Code:                    f.mailer.lastVerificationCode(t),
		ProfileImageBytes:       png,
		ProfileImageContentType: "image/png",
	})
	require.NoError(t, err)

	data, contentType, updatedAt, err := f.store.Accounts().GetProfileImage(ctx, resp.UserID)
	require.NoError(t, err)
	require.Equal(t, png, data)
	require.Equal(t, "image/png", contentType)
	require.NotNil(t, updatedAt)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t)

	accounts := &AccountService{Store: f.store, Sessions: session.New(time.Hour)}
	_, err := accounts.Register(ctx, RegisterRequest{
		Email: "reset@test.local", DisplayName: "R", Password: "oldpassword",
	})
	require.NoError(t, err)

	t.Run("unknown email cannot begin a reset", func(t *testing.T) {
		_, err := f.svc.BeginPasswordReset(ctx, BeginPasswordResetRequest{Email: "nobody@test.local"})
		require.True(t, domain.IsFault(err, domain.FaultEmailNotFound))
	})

	resp, err := f.svc.BeginPasswordReset(ctx, BeginPasswordResetRequest{Email: "reset@test.local"})
	require.NoError(t, err)
	require.Equal(t, 60, resp.ResendAfterSeconds)
	code := f.mailer.lastResetCode(t)

	t.Run("weak new password rejected before touching the code", func(t *testing.T) {
		err := f.svc.CompletePasswordReset(ctx, CompletePasswordResetRequest{
			Email: "reset@test.local", Code: code, NewPassword: "short",
		})
		require.True(t, domain.IsFault(err, domain.FaultWeakPassword))
	})

	t.Run("successful reset swaps the password", func(t *testing.T) {
		err := f.svc.CompletePasswordReset(ctx, CompletePasswordResetRequest{
			Email: "reset@test.local", Code: code, NewPassword: "newpassword",
		})
		require.NoError(t, err)

		_, err = accounts.Login(ctx, LoginRequest{Email: "reset@test.local", Password: "oldpassword"})
		require.True(t, domain.IsFault(err, domain.FaultInvalidCredentials))

		login, err := accounts.Login(ctx, LoginRequest{Email: "reset@test.local", Password: "newpassword"})
		require.NoError(t, err)
		require.Positive(t, login.Token.UserID)
	})

	t.Run("code reuse after success is CODE_EXPIRED", func(t *testing.T) {
		err := f.svc.CompletePasswordReset(ctx, CompletePasswordResetRequest{
			Email: "reset@test.local", Code: code, NewPassword: "anothernewpw",
		})
		require.True(t, domain.IsFault(err, domain.FaultCodeExpired))
	})
}
