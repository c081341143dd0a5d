package resource

import (
	"crypto/rand"
	"fmt"
)

const passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GeneratePassword returns a 16-character alphanumeric password drawn from a
// cryptographically secure source (§4.1.1, invariant §8.6).
func GeneratePassword() (string, error) {
	const length = 16
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	out := make([]byte, length)
	for i, v := range b {
		out[i] = passwordAlphabet[int(v)%len(passwordAlphabet)]
	}
	return string(out), nil
}
