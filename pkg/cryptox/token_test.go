package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 100 {
		tok, err := GenerateSessionToken()
		require.NoError(t, err)
		require.Len(t, tok, 32)
		require.Regexp(t, `^[0-9a-f]{32}$`, tok)

		_, dup := seen[tok]
		require.False(t, dup, "token collision: %s", tok)
		seen[tok] = struct{}{}
	}
}

func TestGenerateNumericCode(t *testing.T) {
	t.Parallel()

	t.Run("all digits at requested length", func(t *testing.T) {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		require.Regexp(t, `^[0-9]{6}$`, code)
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		_, err := GenerateNumericCode(0)
		require.Error(t, err)
		_, err = GenerateNumericCode(-3)
		require.Error(t, err)
	})
}
