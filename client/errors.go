package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthExpired indicates the server rejected the session credential. The
// local token slot has already been cleared; the caller should route the
// user to re-authentication instead of retrying.
var ErrAuthExpired = errors.New("authentication expired")

// APIError carries a non-2xx response from the Lynx server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is(err, ErrAuthExpired) match credential rejections.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrAuthExpired
	}
	return nil
}
