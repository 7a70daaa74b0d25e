package credentials

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paoloronco/lynx/internal/util"
	"github.com/paoloronco/lynx/storage"
	"github.com/paoloronco/lynx/storage/memory"
)

const testOrigin = "https://links.example.com"

func newTestStore(t *testing.T, kv storage.KV, opts ...Option) *Store {
	t.Helper()
	opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return NewStore(kv, testOrigin, opts...)
}

func TestSetTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	s := newTestStore(t, kv)

	require.NoError(t, s.SetToken(ctx, "tok-123"))

	// Persisted value is ciphertext, not the token.
	stored, ok, err := kv.Get(KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEqual(t, "tok-123", stored)

	nonce, ok, err := kv.Get(KeyTokenNonce)
	require.NoError(t, err)
	require.True(t, ok)
	rawNonce, err := util.Base64Decode(nonce)
	require.NoError(t, err)
	assert.Len(t, rawNonce, util.GCMNonceSize)

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestTokenSurvivesRestart(t *testing.T) {
	// A second Store over the same profile must re-derive the same key
	// and decrypt what the first one wrote.
	ctx := context.Background()
	kv := memory.NewStore()

	s1 := newTestStore(t, kv)
	require.NoError(t, s1.SetToken(ctx, "tok-123"))

	s2 := newTestStore(t, kv)
	token, ok, err := s2.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestOriginBindsKey(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()

	s1 := newTestStore(t, kv)
	require.NoError(t, s1.SetToken(ctx, "tok-123"))

	other := NewStore(kv, "https://evil.example.com",
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, ok, err := other.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "ciphertext must not decrypt under another origin")
}

func TestEncryptionUsesFreshNonce(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	s := newTestStore(t, kv)

	require.NoError(t, s.SetToken(ctx, "tok-123"))
	ct1, _, _ := kv.Get(KeyToken)
	nonce1, _, _ := kv.Get(KeyTokenNonce)

	require.NoError(t, s.SetToken(ctx, "tok-123"))
	ct2, _, _ := kv.Get(KeyToken)
	nonce2, _, _ := kv.Get(KeyTokenNonce)

	assert.NotEqual(t, nonce1, nonce2)
	assert.NotEqual(t, ct1, ct2)
}

func TestTamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	s := newTestStore(t, kv)
	require.NoError(t, s.SetToken(ctx, "tok-123"))

	stored, _, _ := kv.Get(KeyToken)
	raw, err := util.Base64Decode(stored)
	require.NoError(t, err)
	raw[0] ^= 0x01
	require.NoError(t, kv.Set(KeyToken, util.Base64Encode(raw)))

	// Fresh store so the read goes through decryption, not the cache.
	token, ok, err := newTestStore(t, kv).Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestTokenSyncColdCache(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	require.NoError(t, newTestStore(t, kv).SetToken(ctx, "tok-123"))

	s := newTestStore(t, kv)

	// Cold cache: the sync reader cannot tell "not logged in" from
	// "not yet decrypted" and reports absence.
	_, ok := s.TokenSync()
	assert.False(t, ok)

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	// Warm cache now serves the sync path.
	token, ok = s.TokenSync()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestStaleCacheRejected(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()

	s := newTestStore(t, kv)
	require.NoError(t, s.SetToken(ctx, "tok-A"))
	_, ok := s.TokenSync()
	require.True(t, ok)

	// A second login elsewhere overwrites storage behind this store's
	// back.
	other := newTestStore(t, kv)
	require.NoError(t, other.SetToken(ctx, "tok-B"))

	// The stale cache must not serve tok-A.
	_, ok = s.TokenSync()
	assert.False(t, ok)

	// The async path re-derives from storage and re-caches.
	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-B", token)

	token, ok = s.TokenSync()
	require.True(t, ok)
	assert.Equal(t, "tok-B", token)
}

func TestCorruptedDeviceSecret(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()

	s := newTestStore(t, kv)
	require.NoError(t, s.SetToken(ctx, "tok-123"))

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-123", token)

	t.Run("ReplacedSecret", func(t *testing.T) {
		replacement, err := util.RandomBytes(32)
		require.NoError(t, err)
		require.NoError(t, kv.Set(KeyDeviceSecret, util.Base64Encode(replacement)))

		_, ok, err := newTestStore(t, kv).Token(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "wrong device secret must read as no token")
	})

	t.Run("MalformedSecret", func(t *testing.T) {
		require.NoError(t, kv.Set(KeyDeviceSecret, "not base64 !!!"))

		_, ok, err := newTestStore(t, kv).Token(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestEmptyTokenRoundTrip(t *testing.T) {
	// An empty token must round-trip like any other string; the reads
	// report it as present/absent, never panic.
	ctx := context.Background()
	kv := memory.NewStore()
	s := newTestStore(t, kv)

	require.NoError(t, s.SetToken(ctx, ""))

	token, ok := s.TokenSync()
	require.True(t, ok)
	assert.Equal(t, "", token)

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", token)

	// A fresh store decrypts the persisted pair back to the empty token.
	token, ok, err = newTestStore(t, kv).Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", token)
}

func TestClearIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	s := newTestStore(t, kv)

	// Clearing an empty slot is fine.
	require.NoError(t, s.Clear())

	require.NoError(t, s.SetToken(ctx, "tok-123"))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	_, ok, err := kv.Get(KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = kv.Get(KeyTokenNonce)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// The device secret survives for the next login.
	_, ok, err = kv.Get(KeyDeviceSecret)
	require.NoError(t, err)
	assert.True(t, ok)
}

// faultyKV fails reads of one key, simulating a profile whose device secret
// cannot be loaded.
type faultyKV struct {
	storage.KV
	failKey string
}

var errReadFailed = errors.New("read failed")

func (f *faultyKV) Get(key string) (string, bool, error) {
	if key == f.failKey {
		return "", false, errReadFailed
	}
	return f.KV.Get(key)
}

func TestPlaintextFallback(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	kv := &faultyKV{KV: inner, failKey: KeyDeviceSecret}
	s := newTestStore(t, kv)

	require.NoError(t, s.SetToken(ctx, "tok-123"))

	// The token was persisted as-is and no nonce entry exists.
	stored, ok, err := inner.Get(KeyToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", stored)
	_, ok, err = inner.Get(KeyTokenNonce)
	require.NoError(t, err)
	assert.False(t, ok)

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	// A fresh store reads the plaintext entry back too.
	token, ok, err = newTestStore(t, kv).Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestStrictEncryptionFailsClosed(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	kv := &faultyKV{KV: inner, failKey: KeyDeviceSecret}
	s := newTestStore(t, kv, WithStrictEncryption())

	err := s.SetToken(ctx, "tok-123")
	require.ErrorIs(t, err, ErrEncryptionFailed)

	// Nothing was persisted.
	_, ok, getErr := inner.Get(KeyToken)
	require.NoError(t, getErr)
	assert.False(t, ok)
}

func TestStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	kv := &faultyKV{KV: memory.NewStore(), failKey: KeyToken}
	s := newTestStore(t, kv)

	_, _, err := s.Token(ctx)
	require.ErrorIs(t, err, errReadFailed)
}

func TestLoginScenario(t *testing.T) {
	// Login issues tok-123, the pair round-trips, then the device secret
	// is corrupted and the token reads as absent.
	ctx := context.Background()
	kv := memory.NewStore()
	s := newTestStore(t, kv)

	require.NoError(t, s.SetToken(ctx, "tok-123"))

	token, ok, err := s.Token(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-123", token)

	require.NoError(t, kv.Set(KeyDeviceSecret, util.Base64Encode([]byte("corrupted-device-secret-value!!!"))))

	_, ok, err = newTestStore(t, kv).Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
