package util

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

const (
	// AESKeySize is the AES-256 key length in bytes.
	AESKeySize = 32
	// GCMNonceSize is the AES-GCM nonce length in bytes.
	GCMNonceSize = 12
)

// SealAESGCM encrypts plainText under rawKey with a fresh random nonce and
// returns the nonce and ciphertext separately so callers can persist them
// under distinct keys. A nonce is never reused with the same key.
func SealAESGCM(plainText, rawKey []byte) (nonce, cipherText []byte, err error) {
	gcm, err := newGCM(rawKey)
	if err != nil {
		return nil, nil, err
	}

	nonce, err = RandomBytes(gcm.NonceSize())
	if err != nil {
		return nil, nil, fmt.Errorf("generating nonce: %w", err)
	}

	cipherText = gcm.Seal(nil, nonce, plainText, nil)
	return nonce, cipherText, nil
}

// OpenAESGCM decrypts cipherText under rawKey and nonce. Any tampering with
// the nonce or ciphertext causes decryption to fail.
func OpenAESGCM(nonce, cipherText, rawKey []byte) ([]byte, error) {
	gcm, err := newGCM(rawKey)
	if err != nil {
		return nil, err
	}

	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce size: got %d, want %d", len(nonce), gcm.NonceSize())
	}

	plainText, err := gcm.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypting ciphertext: %w", err)
	}

	return plainText, nil
}

func newGCM(rawKey []byte) (cipher.AEAD, error) {
	if len(rawKey) != AESKeySize {
		return nil, fmt.Errorf("invalid AES key size: got %d, want %d", len(rawKey), AESKeySize)
	}

	block, err := aes.NewCipher(rawKey)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}

	return gcm, nil
}
