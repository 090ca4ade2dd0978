package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PasswordHasher is the strategy for turning passwords into stored hashes.
// The legacy deployment hashes with an unsalted keyed HMAC; keeping the
// algorithm behind this interface lets a stronger one be swapped in without
// touching callers.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// HMACHasher hashes passwords as hex(HMAC-SHA512(secret, password)).
//
// This matches the stored hashes of existing deployments and must stay
// available for them, but it is a known weakness: no per-password salt and
// no work factor. New deployments should configure Argon2Hasher instead.
type HMACHasher struct {
	secret []byte
}

// NewHMACHasher creates the legacy HMAC-SHA512 password hasher.
func NewHMACHasher(secret []byte) *HMACHasher {
	return &HMACHasher{secret: secret}
}

// Hash returns the hex-encoded HMAC-SHA512 of the password.
func (h *HMACHasher) Hash(password string) (string, error) {
	mac := hmac.New(sha512.New, h.secret)
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Compare recomputes the HMAC and compares in constant time.
func (h *HMACHasher) Compare(hash, password string) bool {
	computed, _ := h.Hash(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// Argon2 parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Argon2Hasher hashes passwords with argon2id and a random per-password
// salt, encoded in the standard $argon2id$ format.
type Argon2Hasher struct{}

// NewArgon2Hasher creates the argon2id password hasher.
func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

// Hash derives an argon2id hash with a fresh random salt.
func (a *Argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Compare re-derives the key using the parameters and salt embedded in the
// stored hash and compares in constant time.
func (a *Argon2Hasher) Compare(hash, password string) bool {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(password), salt, iterations, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}
