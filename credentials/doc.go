// Package credentials protects the Lynx session token at rest in the local
// profile store.
//
// # Scheme
//
// A random 32-byte device secret is generated once per profile and kept in
// the store. An AES-256 key is derived from it with PBKDF2-SHA256 (100,000
// iterations) salted with the server origin, so ciphertext copied to a
// profile pointed at another origin will not decrypt. The session token is
// sealed with AES-GCM under that key using a fresh 12-byte nonce per
// encryption; nonce and ciphertext are stored under separate keys.
//
// The derived key is never persisted. Because derivation is deterministic,
// a token encrypted in one run decrypts in the next without any key escrow.
//
// # Threat model
//
// This protects one bearer token against casual inspection of the profile
// file. It is not a secrets vault and does not defend against an attacker
// who controls the device: the device secret sits in the same store as the
// ciphertext.
//
// # Reads
//
// Store exposes two read paths. TokenSync is non-blocking and serves the
// in-memory cache only when the cached (nonce, ciphertext) pair exactly
// matches what is currently persisted; any mismatch yields absence, never
// stale plaintext. Token performs the full storage read and decryption and
// repopulates the cache. Callers deciding whether a session exists should
// use Token; a cold cache makes TokenSync indistinguishable from logged-out.
package credentials
