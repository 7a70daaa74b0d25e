package util

import (
	"crypto/rand"
	"fmt"
)

// RandomBytes returns n bytes from the system's cryptographically secure
// random source. A failure here is fatal for the caller; there is no
// fallback to weaker randomness.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generating random bytes: %w", err)
	}
	return b, nil
}
