package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Adda-Baaj/nievex-client/pkg/httpclient"
)

// ShortenOption adjusts a CreateShortURL request.
type ShortenOption func(*shortenRequest)

// WithCustomID asks the service to use id as the short link identifier.
// An empty id leaves the field out of the request.
func WithCustomID(id string) ShortenOption {
	return func(r *shortenRequest) {
		r.CustomID = id
	}
}

type shortenRequest struct {
	URL      string `json:"url"`
	CustomID string `json:"customId,omitempty"`
}

// CreateShortURL asks the service for a short link pointing at url.
func (c *Client) CreateShortURL(ctx context.Context, url string, opts ...ShortenOption) (Payload, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &Error{Op: "shorten", Method: http.MethodPost, Path: shortPath, Err: ErrEmptyURL}
	}

	body := shortenRequest{URL: url}
	for _, opt := range opts {
		opt(&body)
	}
	c.log.InfoObj("creating short url", "short_url_request", body)

	payload, err := c.do(ctx, "shorten", http.MethodPost, shortPath, shortTimeout, func(ctx context.Context) (httpclient.Response, error) {
		return c.api.PostJSON(ctx, shortPath, body)
	})
	if err != nil {
		c.log.ErrorObj("short url creation failed", "short_url_error", map[string]any{
			"url":   url,
			"error": err.Error(),
		})
		return nil, err
	}

	c.log.InfoObj("short url created", "short_url_response", payload)
	return payload, nil
}
