package credentials

import "errors"

// ErrEncryptionFailed indicates the session token could not be encrypted and
// the store is running with strict encryption, so nothing was persisted.
// Without strict mode the token is persisted in plaintext instead.
var ErrEncryptionFailed = errors.New("token encryption failed")
