package client

import (
	"context"
	"net/http"
)

// Profile fetches the admin profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile replaces the admin profile and returns the stored version.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) (*Profile, error) {
	var updated Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
