package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "gameauth.db", cfg.DatabaseFile)
	require.Equal(t, 15*time.Minute, cfg.CodeTTL)
	require.Equal(t, 60*time.Second, cfg.ResendCooldown)
	require.Equal(t, 8, cfg.MinPasswordLen)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigReadsTunables(t *testing.T) {
	t.Setenv("AUTH_CODE_TTL_MIN", "5")
	t.Setenv("AUTH_RESEND_COOLDOWN_SEC", "120")
	t.Setenv("AUTH_MIN_PASSWORD_LEN", "12")

	cfg := LoadConfig()

	require.Equal(t, 5*time.Minute, cfg.CodeTTL)
	require.Equal(t, 120*time.Second, cfg.ResendCooldown)
	require.Equal(t, 12, cfg.MinPasswordLen)
}

func TestLoadConfigToleratesWhitespace(t *testing.T) {
	t.Setenv("AUTH_CODE_TTL_MIN", "  5 ")
	t.Setenv("AUTH_RESEND_COOLDOWN_SEC", "\t30\n")

	cfg := LoadConfig()

	require.Equal(t, 5*time.Minute, cfg.CodeTTL)
	require.Equal(t, 30*time.Second, cfg.ResendCooldown)
}

func TestLoadConfigFallsBackOnGarbage(t *testing.T) {
	t.Setenv("AUTH_CODE_TTL_MIN", "soon")
	t.Setenv("AUTH_RESEND_COOLDOWN_SEC", "-10")

	cfg := LoadConfig()

	require.Equal(t, 15*time.Minute, cfg.CodeTTL)
	require.Equal(t, 60*time.Second, cfg.ResendCooldown)
}
