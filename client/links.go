package client

import (
	"context"
	"fmt"
	"net/http"
)

// Links returns all cards in display order.
func (c *Client) Links(ctx context.Context) ([]Link, error) {
	var links []Link
	if err := c.do(ctx, http.MethodGet, "/api/links", nil, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// CreateLink appends a new card and returns it with its server-assigned ID
// and position.
func (c *Client) CreateLink(ctx context.Context, link Link) (*Link, error) {
	var created Link
	if err := c.do(ctx, http.MethodPost, "/api/links", link, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLink replaces the card with the given ID.
func (c *Client) UpdateLink(ctx context.Context, id string, link Link) (*Link, error) {
	if id == "" {
		return nil, fmt.Errorf("link ID is required")
	}
	var updated Link
	if err := c.do(ctx, http.MethodPut, "/api/links/"+id, link, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteLink removes the card with the given ID.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("link ID is required")
	}
	return c.do(ctx, http.MethodDelete, "/api/links/"+id, nil, nil)
}

// ReorderLinks sets the display order to the given ID sequence.
func (c *Client) ReorderLinks(ctx context.Context, ids []string) error {
	return c.do(ctx, http.MethodPut, "/api/links/reorder", ReorderRequest{IDs: ids}, nil)
}
