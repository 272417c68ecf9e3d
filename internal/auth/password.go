package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters. These must stay identical between
// registration and login or every credential check fails.
const (
	SaltLength    = 32
	KeyLength     = 32
	KDFIterations = 100000
)

// GenerateSalt returns a fresh random salt for a new user.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey derives the stored credential key from a password and salt
// using PBKDF2-HMAC-SHA256, hex-encoded.
func DeriveKey(password string, salt []byte) string {
	key := pbkdf2.Key([]byte(password), salt, KDFIterations, KeyLength, sha256.New)
	return hex.EncodeToString(key)
}

// VerifyKey derives a candidate key from the password and stored salt and
// compares it against the stored key in constant time.
func VerifyKey(password string, salt []byte, storedKey string) bool {
	candidate := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedKey)) == 1
}

// GenerateSessionSecret creates a random 32-byte secret for CSRF signing.
func GenerateSessionSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
