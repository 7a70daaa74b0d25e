package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/paoloronco/lynx/internal/util"
)

// AuthStatus reports whether the server still needs first-run setup.
func (c *Client) AuthStatus(ctx context.Context) (*AuthStatus, error) {
	var status AuthStatus
	if err := c.do(ctx, http.MethodGet, "/auth/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Login authenticates with the admin password and stores the issued session
// token in the credential store.
func (c *Client) Login(ctx context.Context, password string) error {
	return c.authenticate(ctx, "/auth/login", LoginRequest{
		Password: util.Normalize(password),
	})
}

// Setup sets the initial admin password on a fresh server and stores the
// issued session token.
func (c *Client) Setup(ctx context.Context, password string) error {
	return c.authenticate(ctx, "/auth/setup", LoginRequest{
		Password: util.Normalize(password),
	})
}

// ChangePassword replaces the admin password. The server rotates the
// session; the fresh token replaces the stored one.
func (c *Client) ChangePassword(ctx context.Context, current, updated string) error {
	return c.authenticate(ctx, "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: util.Normalize(current),
		NewPassword:     util.Normalize(updated),
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) error {
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	if resp.Token == "" {
		return fmt.Errorf("server returned an empty session token")
	}
	if err := c.creds.SetToken(ctx, resp.Token); err != nil {
		return fmt.Errorf("storing session token: %w", err)
	}
	return nil
}

// Logout discards the local session. Lynx sessions are stateless on the
// server, so clearing the token slot is all there is to do.
func (c *Client) Logout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.creds.Clear()
}
