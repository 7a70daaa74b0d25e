// Package client implements the Lynx API client: the authenticated request
// pipeline plus typed wrappers for the auth, profile, link and theme
// endpoints. Session tokens are resolved through a credentials.Store, never
// held on the Client itself.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/paoloronco/lynx/credentials"
)

const defaultTimeout = 30 * time.Second

// Client talks to one Lynx server on behalf of one profile.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	creds   *credentials.Store
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger sets the structured logger. If not set, a default JSON logger
// writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the Lynx server at baseURL. creds must be bound
// to the same origin as baseURL or stored tokens will not decrypt.
func New(baseURL string, creds *credentials.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", u.Scheme)
	}

	c := &Client{
		baseURL: u,
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: defaultTimeout}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return c, nil
}

// Origin reduces baseURL to its origin (scheme://host[:port]). The result
// salts the credential key derivation, so it must be computed the same way
// for every client of the same server.
func Origin(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base URL %q has no origin", baseURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// do runs one request through the pipeline: resolve the bearer token, defeat
// intermediary caches on reads, send, and normalize error responses. A
// rejected credential clears the token slot and surfaces ErrAuthExpired.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := c.baseURL.JoinPath(path)

	if method == http.MethodGet {
		// Cache defeat: authenticated reads must never be served
		// stale by an intermediary.
		q := u.Query()
		q.Set("ts", strconv.FormatInt(time.Now().UnixMilli(), 10))
		u.RawQuery = q.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Bearer header when a token exists; anonymous request otherwise.
	token, ok, err := c.creds.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolving session token: %w", err)
	}
	if ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		// Dead token: clear it so the next call is anonymous and the
		// caller can re-authenticate.
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Warn("clearing rejected token failed",
				slog.String("reason", clearErr.Error()))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiMessage(resp)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: apiMessage(resp)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}
	return nil
}

// apiMessage extracts the server-provided error message, if any.
func apiMessage(resp *http.Response) string {
	var body ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}
