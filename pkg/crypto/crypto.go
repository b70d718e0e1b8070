package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateRandomString produces a cryptographically random base64url string of n bytes.
func GenerateRandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateInviteCode generates a random group invite code (16 bytes = 22 chars base64url).
func GenerateInviteCode() (string, error) {
	return GenerateRandomString(16)
}

// GenerateConnectionKey generates the random key identifying one presence
// channel connection (12 bytes = 16 chars base64url).
func GenerateConnectionKey() (string, error) {
	return GenerateRandomString(12)
}
