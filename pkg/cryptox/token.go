package cryptox

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// SessionTokenBytes is the entropy of a session token before encoding.
// 16 bytes encode to 32 lowercase hex characters.
const SessionTokenBytes = 16

// GenerateSessionToken creates a cryptographically random opaque session
// token rendered as lowercase hex with no separators.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateNumericCode creates a random all-digit string of the given length,
// suitable for emailed one-time codes. Leading zeros are allowed.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	var sb strings.Builder
	sb.Grow(length)
	for range length {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate numeric code: %w", err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
