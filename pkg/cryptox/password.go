package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. Raising it transparently upgrades new
// hashes; existing hashes keep the cost they were created with.
const HashCost = bcrypt.DefaultCost

// ErrMismatch is returned by Verify when the plaintext does not match the
// stored hash, or the stored hash is malformed. Callers deliberately cannot
// tell those cases apart.
var ErrMismatch = errors.New("cryptox: hash mismatch")

// HashPassword produces a salted bcrypt hash. The salt is generated per
// call, so hashing the same input twice yields different outputs.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares a plaintext against a bcrypt hash. A malformed hash and a
// wrong password both return ErrMismatch so there is no hash-format oracle.
func Verify(password, encodedHash string) error {
	if encodedHash == "" {
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)); err != nil {
		return ErrMismatch
	}
	return nil
}
