// Package storage provides the key-value store abstraction backing a Lynx
// client profile. It plays the role browser local storage plays for the web
// client: a small set of string entries that survive process restarts.
package storage

import "errors"

// ErrUnavailable indicates the backing store cannot be read or written.
// Session continuity is lost when this occurs; callers should treat the
// client as unauthenticated rather than retrying blindly.
var ErrUnavailable = errors.New("profile storage unavailable")

// KV defines the interface for a profile key-value store.
//
// Get reports presence explicitly: a missing key is (="", false, nil), not an
// error. Implementations wrap backend failures with ErrUnavailable.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
