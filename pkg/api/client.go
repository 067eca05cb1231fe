// Package api is a client for the Nievex CDN and URL-shortener service.
package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Adda-Baaj/nievex-client/pkg/httpclient"
)

const (
	DefaultBaseURL = "https://www.nievexsviz.my.id"
	DefaultAPIKey  = "nvxc"

	// APIKeyHeader carries the static API key on authenticated calls.
	APIKeyHeader = "x-api-key"

	uploadPath = "/api/v1/cdn"
	shortPath  = "/api/v1/short"
	healthPath = "/health"

	uploadTimeout = 30 * time.Second
	shortTimeout  = 10 * time.Second
	healthTimeout = 5 * time.Second
)

// Logger is the logging surface used by the client.
type Logger = httpclient.Logger

// Client talks to the remote API. Its configuration is fixed at construction,
// and it is safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string
	log     Logger

	// api carries the API key header and the log hooks; bare has neither.
	api  httpclient.Client
	bare httpclient.Client
}

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			return fmt.Errorf("base url must not be empty")
		}
		c.baseURL = u
		return nil
	}
}

// WithAPIKey overrides DefaultAPIKey.
func WithAPIKey(key string) Option {
	return func(c *Client) error {
		c.apiKey = key
		return nil
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithTransports replaces the authenticated and bare transports. Per-operation
// deadlines still apply through the request context.
func WithTransports(authenticated, bare httpclient.Client) Option {
	return func(c *Client) error {
		if authenticated == nil || bare == nil {
			return fmt.Errorf("transports must not be nil")
		}
		c.api = authenticated
		c.bare = bare
		return nil
	}
}

// New builds a Client. Without options it targets DefaultBaseURL with DefaultAPIKey.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  DefaultAPIKey,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	c.log = httpclient.EnsureLogger(c.log)

	if c.api == nil {
		c.api = httpclient.NewRestyClient(httpclient.Options{
			BaseURL: c.baseURL,
			Headers: map[string]string{APIKeyHeader: c.apiKey},
			Logger:  c.log,
		})
	}
	if c.bare == nil {
		c.bare = httpclient.NewRestyClient(httpclient.Options{BaseURL: c.baseURL})
	}
	return c, nil
}

// BaseURL reports the host the client targets.
func (c *Client) BaseURL() string { return c.baseURL }

type call func(ctx context.Context) (httpclient.Response, error)

// do runs fn under timeout and turns transport faults and non-2xx replies into *Error.
func (c *Client) do(ctx context.Context, op, method, path string, timeout time.Duration, fn call) (Payload, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := fn(ctx)
	if err != nil {
		return nil, &Error{Op: op, Method: method, Path: path, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &Error{
			Op:         op,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       resp.Body(),
			Err:        ErrUnexpectedStatus,
		}
	}
	return newPayload(resp.Body()), nil
}
