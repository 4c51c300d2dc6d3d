// Package password derives and verifies credential hashes for the primary
// store. The stored form is `base64(hash).base64(salt)` with a single
// separator, so malformed rows fail closed instead of panicking a request.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/crypto/argon2"

	dErrors "storegate/pkg/domainerrors"
)

const (
	defaultTime        uint32 = 1
	defaultMemoryKB    uint32 = 64 * 1024
	defaultParallelism uint8  = 4
	defaultSaltLength  uint32 = 16
	defaultKeyLength   uint32 = 32

	separator = "."

	minPasswordLength = 8
)

// Hasher applies argon2id with a per-call random salt.
type Hasher struct {
	time        uint32
	memory      uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// NewHasher returns a hasher with production parameters.
func NewHasher() *Hasher {
	return &Hasher{
		time:        defaultTime,
		memory:      defaultMemoryKB,
		parallelism: defaultParallelism,
		saltLength:  defaultSaltLength,
		keyLength:   defaultKeyLength,
	}
}

// Hash derives the stored form for a plaintext password.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.saltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.parallelism, h.keyLength)

	return base64.RawStdEncoding.EncodeToString(key) +
		separator +
		base64.RawStdEncoding.EncodeToString(salt), nil
}

// Verify re-derives the hash with the embedded salt and compares in constant
// time. Any malformed stored form verifies false; it never errors out.
func (h *Hasher) Verify(plaintext, stored string) bool {
	parts := strings.Split(stored, separator)
	if len(parts) != 2 {
		return false
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[0])
	if err != nil || len(hash) == 0 {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false
	}

	computed := argon2.IDKey([]byte(plaintext), salt, h.time, h.memory, h.parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(computed, hash) == 1
}

// ValidateStrength enforces the storefront password policy before any state
// is touched.
func ValidateStrength(plaintext string) error {
	if len(plaintext) < minPasswordLength {
		return dErrors.New(dErrors.CodeWeakPassword, "password must be at least 8 characters")
	}

	var hasLetter, hasDigit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return dErrors.New(dErrors.CodeWeakPassword, "password must contain a letter and a digit")
	}
	return nil
}
