package client

import (
	"context"
	"net/http"
)

// Page fetches the public page content. Works anonymously; the bearer header
// is simply omitted when no session exists.
func (c *Client) Page(ctx context.Context) (*Page, error) {
	var p Page
	if err := c.do(ctx, http.MethodGet, "/api/page", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
