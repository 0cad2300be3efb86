package service

import (
	"testing"
	"time"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/northarcade/gameauth/internal/auth/session"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRequiredEmail(t *testing.T) {
	t.Parallel()

	t.Run("blank is invalid", func(t *testing.T) {
		for _, in := range []string{"", "   ", "\t\n"} {
			_, err := normalizeRequiredEmail(in, "email is required")
			require.True(t, domain.IsFault(err, domain.FaultInvalidRequest), "input %q", in)
		}
	})

	t.Run("trims surrounding whitespace only", func(t *testing.T) {
		got, err := normalizeRequiredEmail("\t User@Test.Local  ", "email is required")
		require.NoError(t, err)
		// Case is preserved.
		require.Equal(t, "User@Test.Local", got)
	})
}

func TestEnsureValidUserID(t *testing.T) {
	t.Parallel()

	require.NoError(t, ensureValidUserID(1))
	require.True(t, domain.IsFault(ensureValidUserID(0), domain.FaultInvalidRequest))
	require.True(t, domain.IsFault(ensureValidUserID(-5), domain.FaultInvalidRequest))
}

func TestEnsureCodeUsable(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("live and unused passes", func(t *testing.T) {
		require.NoError(t, ensureCodeUsable(now, now.Add(time.Second), false, "expired"))
	})

	t.Run("used fails regardless of expiry", func(t *testing.T) {
		err := ensureCodeUsable(now, now.Add(time.Hour), true, "expired")
		require.True(t, domain.IsFault(err, domain.FaultCodeExpired))
	})

	t.Run("exact expiry instant counts as expired", func(t *testing.T) {
		err := ensureCodeUsable(now, now, false, "expired")
		require.True(t, domain.IsFault(err, domain.FaultCodeExpired))
	})
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	reg := session.New(time.Hour)
	tok, err := reg.Issue(42)
	require.NoError(t, err)

	t.Run("resolves live token", func(t *testing.T) {
		uid, err := requireSession(reg, tok.Token)
		require.NoError(t, err)
		require.EqualValues(t, 42, uid)
	})

	t.Run("blank and padded tokens fail identically", func(t *testing.T) {
		for _, probe := range []string{"", "  ", tok.Token + " ", "unknown-token"} {
			_, err := requireSession(reg, probe)
			require.True(t, domain.IsFault(err, domain.FaultInvalidCredentials), "probe %q", probe)
		}
	})
}
