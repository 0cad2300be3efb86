package service

import (
	"context"
	"testing"

	"github.com/northarcade/gameauth/internal/auth/mail"
	"github.com/northarcade/gameauth/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

// fakeMailer records dispatched codes and can be primed to fail.
type fakeMailer struct {
	verificationCodes []string
	resetCodes        []string
	failWith          error
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, _ string, code string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.verificationCodes = append(m.verificationCodes, code)
	return nil
}

func (m *fakeMailer) SendPasswordResetCode(_ context.Context, _ string, code string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resetCodes = append(m.resetCodes, code)
	return nil
}

var _ mail.Dispatcher = (*fakeMailer)(nil)

func (m *fakeMailer) lastVerificationCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.verificationCodes, "no verification code was sent")
	return m.verificationCodes[len(m.verificationCodes)-1]
}

func (m *fakeMailer) lastResetCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.resetCodes, "no reset code was sent")
	return m.resetCodes[len(m.resetCodes)-1]
}
