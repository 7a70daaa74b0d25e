package client

import (
	"context"
	"net/http"
)

// Theme fetches the page appearance settings.
func (c *Client) Theme(ctx context.Context) (*Theme, error) {
	var t Theme
	if err := c.do(ctx, http.MethodGet, "/api/theme", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTheme replaces the page appearance settings.
func (c *Client) UpdateTheme(ctx context.Context, t Theme) (*Theme, error) {
	var updated Theme
	if err := c.do(ctx, http.MethodPut, "/api/theme", t, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
