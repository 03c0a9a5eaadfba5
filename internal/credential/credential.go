// Package credential derives and verifies stored password secrets.
//
// A stored secret is base64(salt || key) where salt is 16 random bytes and key is the
// 32-byte PBKDF2-HMAC-SHA1 output over the password with 100,000 iterations. The layout
// matches secrets written by Rfc2898DeriveBytes, so existing user rows keep verifying.
package credential

import (
	"crypto/rand"
	"crypto/sha1" // #nosec G505 -- PRF of the persisted PBKDF2 format
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the number of random salt bytes prefixed to the derived key.
	SaltSize = 16
	// KeySize is the length of the derived key.
	KeySize = 32
	// Iterations is the PBKDF2 work factor.
	Iterations = 100000
	// StoredSize is the decoded length of a stored secret.
	StoredSize = SaltSize + KeySize
)

// Hasher implements interfaces.PasswordHasher with the package functions.
type Hasher struct{}

// NewHasher returns a Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Derive returns a new stored secret for plaintext.
func (Hasher) Derive(plaintext string) (string, error) {
	return Derive(plaintext)
}

// Verify reports whether plaintext matches storedSecret.
func (Hasher) Verify(plaintext, storedSecret string) bool {
	return Verify(plaintext, storedSecret)
}

// Derive generates a fresh salt and returns base64(salt || key) for plaintext.
// It fails only when the system entropy source cannot be read.
func Derive(plaintext string) (string, error) {
	return deriveWith(rand.Reader, plaintext)
}

func deriveWith(entropy io.Reader, plaintext string) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(entropy, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	stored := make([]byte, 0, StoredSize)
	stored = append(stored, salt...)
	stored = append(stored, derive(plaintext, salt)...)

	return base64.StdEncoding.EncodeToString(stored), nil
}

// Verify recomputes the key for plaintext with the salt held in storedSecret and
// compares it in constant time. A malformed secret never matches.
func Verify(plaintext, storedSecret string) bool {
	stored, err := base64.StdEncoding.DecodeString(storedSecret)
	if err != nil || len(stored) != StoredSize {
		return false
	}

	salt, key := stored[:SaltSize], stored[SaltSize:]
	return subtle.ConstantTimeCompare(derive(plaintext, salt), key) == 1
}

func derive(plaintext string, salt []byte) []byte {
	return pbkdf2.Key([]byte(plaintext), salt, Iterations, KeySize, sha1.New)
}
