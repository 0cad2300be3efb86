package service

import (
	"testing"

	"github.com/northarcade/gameauth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func pngBytes(size int) []byte {
	buf := make([]byte, size)
	copy(buf, pngSignature)
	return buf
}

func TestValidateProfileImage(t *testing.T) {
	t.Parallel()

	const maxBytes = 1024

	t.Run("no image always passes", func(t *testing.T) {
		require.NoError(t, validateProfileImage(nil, "", maxBytes))
		require.NoError(t, validateProfileImage([]byte{}, "anything/at-all", maxBytes))
	})

	t.Run("content type required", func(t *testing.T) {
		err := validateProfileImage(pngBytes(16), "  ", maxBytes)
		require.True(t, domain.IsFault(err, domain.FaultInvalidRequest))
		require.Contains(t, err.Error(), "content type")
	})

	t.Run("only png and jpg allowed", func(t *testing.T) {
		err := validateProfileImage(pngBytes(16), "image/gif", maxBytes)
		require.True(t, domain.IsFault(err, domain.FaultInvalidRequest))
		require.Contains(t, err.Error(), "PNG or JPG")
	})

	t.Run("size boundary is inclusive", func(t *testing.T) {
		require.NoError(t, validateProfileImage(pngBytes(maxBytes), "image/png", maxBytes))

		err := validateProfileImage(pngBytes(maxBytes+1), "image/png", maxBytes)
		require.True(t, domain.IsFault(err, domain.FaultInvalidRequest))
		require.Contains(t, err.Error(), "too large")
	})

	t.Run("signature must match declared type", func(t *testing.T) {
		jpeg := append([]byte{0xFF, 0xD8, 0xFF}, make([]byte, 13)...)
		require.NoError(t, validateProfileImage(jpeg, "image/jpeg", maxBytes))

		// PNG bytes declared as JPEG are a spoof.
		err := validateProfileImage(pngBytes(16), "image/jpeg", maxBytes)
		require.True(t, domain.IsFault(err, domain.FaultInvalidRequest))
	})

	t.Run("buffer shorter than signature fails the signature check", func(t *testing.T) {
		err := validateProfileImage([]byte{0x89, 0x50}, "image/png", maxBytes)
		require.True(t, domain.IsFault(err, domain.FaultInvalidRequest))
		require.Contains(t, err.Error(), "declared type")
	})

	t.Run("unsupported type wins over oversize", func(t *testing.T) {
		err := validateProfileImage(make([]byte, maxBytes+1), "image/gif", maxBytes)
		require.Contains(t, err.Error(), "PNG or JPG")
	})
}
