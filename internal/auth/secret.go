package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSecret creates a random 32-byte hex-encoded signing secret.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
