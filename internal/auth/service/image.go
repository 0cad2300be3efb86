package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/northarcade/gameauth/internal/auth/domain"
)

// DefaultMaxImageBytes caps uploaded profile images at 256 KiB.
const DefaultMaxImageBytes = 256 * 1024

const (
	imageTypePNG  = "image/png"
	imageTypeJPEG = "image/jpeg"
)

var (
	pngSignature  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
)

// validateProfileImage checks an optional uploaded image. No image always
// passes. The four checks run in a fixed order and the first failure wins:
// declared type present, declared type supported, size within the maximum
// (inclusive), leading bytes match the magic signature of the declared type.
func validateProfileImage(data []byte, declaredType string, maxBytes int) error {
	if len(data) == 0 {
		return nil
	}

	if strings.TrimSpace(declaredType) == "" {
		return domain.NewFault(domain.FaultInvalidRequest, "profile image content type is required")
	}

	var signature []byte
	switch declaredType {
	case imageTypePNG:
		signature = pngSignature
	case imageTypeJPEG:
		signature = jpegSignature
	default:
		return domain.NewFault(domain.FaultInvalidRequest, "profile image must be PNG or JPG")
	}

	if len(data) > maxBytes {
		return domain.NewFault(domain.FaultInvalidRequest,
			fmt.Sprintf("profile image is too large, maximum is %d bytes", maxBytes))
	}

	// A buffer shorter than the signature cannot match it.
	if len(data) < len(signature) || !bytes.Equal(data[:len(signature)], signature) {
		return domain.NewFault(domain.FaultInvalidRequest,
			"profile image content does not match its declared type")
	}
	return nil
}
