package auth

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")

	key := DeriveKey("correct horse battery staple", salt)

	if len(key) != KeyLength*2 {
		t.Errorf("expected %d hex chars, got %d", KeyLength*2, len(key))
	}
	if _, err := hex.DecodeString(key); err != nil {
		t.Errorf("derived key is not valid hex: %v", err)
	}

	// Derivation must be deterministic for a fixed salt
	if again := DeriveKey("correct horse battery staple", salt); again != key {
		t.Errorf("derivation is not deterministic: %q != %q", again, key)
	}

	// A different password or a different salt must change the key
	if other := DeriveKey("wrong password", salt); other == key {
		t.Error("different passwords produced the same key")
	}
	otherSalt := []byte("fedcba9876543210fedcba9876543210")
	if other := DeriveKey("correct horse battery staple", otherSalt); other == key {
		t.Error("different salts produced the same key")
	}
}

func TestVerifyKey(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	stored := DeriveKey("secret-password", salt)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "secret-password", true},
		{"wrong password", "not-the-password", false},
		{"empty password", "", false},
		{"case-sensitive", "Secret-Password", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyKey(tt.password, salt, stored); got != tt.want {
				t.Errorf("VerifyKey(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestGenerateSalt(t *testing.T) {
	first, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if len(first) != SaltLength {
		t.Errorf("expected %d bytes, got %d", SaltLength, len(first))
	}

	second, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt failed: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Error("two generated salts are identical")
	}
}
