package util

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2Iterations matches the iteration count used by every Lynx
	// client; changing it breaks decryption of previously stored tokens.
	PBKDF2Iterations = 100_000
	// PBKDF2KeyLength is the derived key length in bytes.
	PBKDF2KeyLength = 32
)

// DerivePBKDF2Key derives an AES-256 key from secret and salt using
// PBKDF2-SHA256. Derivation is deterministic: the same secret and salt
// always yield the same key.
func DerivePBKDF2Key(secret, salt []byte) []byte {
	return pbkdf2.Key(secret, salt, PBKDF2Iterations, PBKDF2KeyLength, sha256.New)
}
