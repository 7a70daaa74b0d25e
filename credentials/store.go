package credentials

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/paoloronco/lynx/internal/util"
	"github.com/paoloronco/lynx/storage"
)

// Profile store keys. These names are shared with the Lynx web client;
// both clients can read a profile written by the other.
const (
	// KeyToken holds the base64 ciphertext of the session token, or the
	// plaintext token when encryption was unavailable.
	KeyToken = "lynx-auth-token"
	// KeyTokenNonce holds the base64 12-byte AES-GCM nonce for KeyToken.
	// Absent when KeyToken holds plaintext.
	KeyTokenNonce = "lynx-auth-iv-" + KeyToken
	// KeyDeviceSecret holds the base64 32-byte device secret.
	KeyDeviceSecret = "lynx-device-secret"

	deviceSecretLen = 32
)

// Store manages the encrypted session token for one client profile.
// One Store instance is owned by one client; it is safe for concurrent use.
type Store struct {
	kv     storage.KV
	origin string
	strict bool
	logger *slog.Logger

	mu    sync.Mutex
	cache *cacheEntry
}

// cacheEntry records the exact persisted pair the plaintext was decrypted
// from. The plaintext is only served while the pair still matches storage.
type cacheEntry struct {
	nonce      string
	cipherText string
	token      *memguard.Enclave
}

// Option configures a Store.
type Option func(*Store)

// WithStrictEncryption makes SetToken fail closed: if the token cannot be
// encrypted, nothing is persisted and ErrEncryptionFailed is returned. The
// default policy persists the plaintext token instead, trading
// confidentiality for not dropping the session.
func WithStrictEncryption() Option {
	return func(s *Store) {
		s.strict = true
	}
}

// WithLogger sets the structured logger. If not set, a default JSON logger
// writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a token store over kv. origin is the server origin
// (scheme://host[:port]) and salts the key derivation, binding the derived
// key to the server the profile belongs to.
func NewStore(kv storage.KV, origin string, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		origin: origin,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return s
}

// deviceSecret returns the profile's device secret, creating and persisting
// it on first use. A missing secure random source is a hard failure; the
// store never degrades to weak randomness.
func (s *Store) deviceSecret() ([]byte, error) {
	encoded, ok, err := s.kv.Get(KeyDeviceSecret)
	if err != nil {
		return nil, fmt.Errorf("reading device secret: %w", err)
	}
	if ok {
		secret, err := util.Base64Decode(encoded)
		if err != nil {
			return nil, fmt.Errorf("decoding device secret: %w", err)
		}
		return secret, nil
	}

	secret, err := util.RandomBytes(deviceSecretLen)
	if err != nil {
		return nil, fmt.Errorf("creating device secret: %w", err)
	}
	if err := s.kv.Set(KeyDeviceSecret, util.Base64Encode(secret)); err != nil {
		return nil, fmt.Errorf("persisting device secret: %w", err)
	}
	return secret, nil
}

// deriveKey derives the AES-256 token key from the device secret and the
// origin salt. Deterministic: the same profile and origin always yield the
// same key, which is what lets ciphertext survive a restart.
func (s *Store) deriveKey() ([]byte, error) {
	secret, err := s.deviceSecret()
	if err != nil {
		return nil, err
	}
	defer util.WipeBytes(secret)
	return util.DerivePBKDF2Key(secret, []byte(s.origin)), nil
}

func (s *Store) encryptToken(token string) (nonce, cipherText string, err error) {
	key, err := s.deriveKey()
	if err != nil {
		return "", "", err
	}
	defer util.WipeBytes(key)

	rawNonce, rawCipherText, err := util.SealAESGCM([]byte(token), key)
	if err != nil {
		return "", "", err
	}
	return util.Base64Encode(rawNonce), util.Base64Encode(rawCipherText), nil
}

// decryptToken reports absence on any failure: wrong key, tampered
// ciphertext, malformed base64, cleared device secret. All of these mean
// "no usable token", not a crash.
func (s *Store) decryptToken(nonce, cipherText string) (string, bool) {
	rawNonce, err := util.Base64Decode(nonce)
	if err != nil {
		return "", false
	}
	rawCipherText, err := util.Base64Decode(cipherText)
	if err != nil {
		return "", false
	}
	key, err := s.deriveKey()
	if err != nil {
		return "", false
	}
	defer util.WipeBytes(key)

	plainText, err := util.OpenAESGCM(rawNonce, rawCipherText, key)
	if err != nil {
		return "", false
	}
	token := string(plainText)
	util.WipeBytes(plainText)
	return token, true
}

// SetToken encrypts token, persists the (nonce, ciphertext) pair and updates
// the in-memory cache. If encryption fails and strict mode is off, the
// plaintext token is persisted instead and a warning is logged; the session
// survives at the cost of at-rest confidentiality.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	nonce, cipherText, err := s.encryptToken(token)
	if err != nil {
		if s.strict {
			return fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
		}
		s.logger.Warn("token encryption failed, storing token in plaintext",
			slog.String("reason", err.Error()))
		if err := s.kv.Set(KeyToken, token); err != nil {
			return fmt.Errorf("persisting token: %w", err)
		}
		if err := s.kv.Delete(KeyTokenNonce); err != nil {
			return fmt.Errorf("clearing stale nonce: %w", err)
		}
		s.setCache("", token, token)
		return nil
	}

	if err := s.kv.Set(KeyToken, cipherText); err != nil {
		return fmt.Errorf("persisting token ciphertext: %w", err)
	}
	if err := s.kv.Set(KeyTokenNonce, nonce); err != nil {
		return fmt.Errorf("persisting token nonce: %w", err)
	}
	s.setCache(nonce, cipherText, token)
	return nil
}

// TokenSync is the non-blocking read path. It serves the cached plaintext
// only when the cached (nonce, ciphertext) pair exactly matches what is
// currently persisted; on a cold or stale cache it reports absence without
// attempting decryption. Callers that need a definitive answer use Token.
func (s *Store) TokenSync() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return "", false
	}

	storedToken, nonce, err := s.readStored()
	if err != nil {
		return "", false
	}
	if s.cache.cipherText != storedToken || s.cache.nonce != nonce {
		// Storage was overwritten by another login; never serve the
		// previous session's plaintext.
		return "", false
	}
	return s.openCached()
}

// Token returns the current session token, reading and decrypting from the
// profile store when the cache cannot serve it. Absence (ok == false) covers
// both "never logged in" and "ciphertext no longer decryptable"; the two are
// deliberately indistinguishable and both mean re-authentication. The error
// is non-nil only when the profile store itself is unavailable.
func (s *Store) Token(ctx context.Context) (token string, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	if token, ok := s.TokenSync(); ok {
		return token, true, nil
	}

	storedToken, nonce, err := s.readStored()
	if err != nil {
		return "", false, err
	}
	if storedToken == "" {
		return "", false, nil
	}

	if nonce == "" {
		// Plaintext fallback entry written when encryption was
		// unavailable; the stored value is the token itself.
		s.mu.Lock()
		s.setCacheLocked("", storedToken, storedToken)
		s.mu.Unlock()
		return storedToken, true, nil
	}

	token, ok = s.decryptToken(nonce, storedToken)
	if !ok {
		return "", false, nil
	}
	s.mu.Lock()
	s.setCacheLocked(nonce, storedToken, token)
	s.mu.Unlock()
	return token, true, nil
}

// Clear removes the persisted token entries and drops the cache. Idempotent;
// the device secret is left in place for the next login.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()

	if err := s.kv.Delete(KeyToken); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	if err := s.kv.Delete(KeyTokenNonce); err != nil {
		return fmt.Errorf("clearing token nonce: %w", err)
	}
	return nil
}

// readStored returns the persisted token value and nonce, "" when absent.
func (s *Store) readStored() (storedToken, nonce string, err error) {
	storedToken, _, err = s.kv.Get(KeyToken)
	if err != nil {
		return "", "", fmt.Errorf("reading token: %w", err)
	}
	nonce, _, err = s.kv.Get(KeyTokenNonce)
	if err != nil {
		return "", "", fmt.Errorf("reading token nonce: %w", err)
	}
	return storedToken, nonce, nil
}

func (s *Store) setCache(nonce, cipherText, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCacheLocked(nonce, cipherText, token)
}

func (s *Store) setCacheLocked(nonce, cipherText, token string) {
	entry := &cacheEntry{
		nonce:      nonce,
		cipherText: cipherText,
	}
	// memguard returns a nil enclave for zero-length input; an empty
	// token is represented by the nil enclave instead.
	if token != "" {
		entry.token = memguard.NewEnclave([]byte(token))
	}
	s.cache = entry
}

// openCached decrypts the enclave and returns a copy of the plaintext.
// Callers must hold s.mu.
func (s *Store) openCached() (string, bool) {
	if s.cache.token == nil {
		return "", true
	}
	buf, err := s.cache.token.Open()
	if err != nil {
		return "", false
	}
	defer buf.Destroy()
	return string(buf.Bytes()), true
}
