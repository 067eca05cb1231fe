package api

import (
	"context"
	"net/http"

	"github.com/Adda-Baaj/nievex-client/pkg/httpclient"
)

// CheckHealth queries the unauthenticated health endpoint. The API key is not sent.
func (c *Client) CheckHealth(ctx context.Context) (Payload, error) {
	payload, err := c.do(ctx, "health", http.MethodGet, healthPath, healthTimeout, func(ctx context.Context) (httpclient.Response, error) {
		return c.bare.Get(ctx, healthPath)
	})
	if err != nil {
		c.log.ErrorObj("health check failed", "health_error", err.Error())
		return nil, err
	}
	return payload, nil
}
