package httpclient

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const bodySnippetLimit = 512

// Options configures a RestyClient.
type Options struct {
	BaseURL string
	// Headers are sent with every request issued through the client.
	Headers map[string]string
	// Timeout bounds a whole exchange. Zero leaves it to the request context.
	Timeout time.Duration
	// Logger receives the request/response hooks. Nil installs no hooks.
	Logger Logger
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a RestyClient bound to opts.BaseURL. Logging hooks are
// installed only when opts.Logger is set.
func NewRestyClient(opts Options) *RestyClient {
	c := newRestyBaseClient(opts.Timeout)
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		c.SetBaseURL(strings.TrimRight(base, "/"))
	}
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	if opts.Logger != nil {
		installLogHooks(c, opts.Logger)
	}
	return &RestyClient{client: c}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout and no retries.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetRetryCount(0)
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Get performs an HTTP GET request against path.
func (r *RestyClient) Get(ctx context.Context, path string) (Response, error) {
	resp, err := r.client.R().SetContext(ctx).Get(path)
	return adapt(resp, err)
}

// PostJSON performs an HTTP POST with body encoded as JSON.
func (r *RestyClient) PostJSON(ctx context.Context, path string, body any) (Response, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	return adapt(resp, err)
}

// PostMultipart performs an HTTP POST with a multipart/form-data body holding a single file part.
func (r *RestyClient) PostMultipart(ctx context.Context, path string, part FilePart) (Response, error) {
	if part.Reader == nil {
		return nil, errors.New("multipart part reader is nil")
	}
	resp, err := r.client.R().
		SetContext(ctx).
		SetFileReader(part.Field, part.FileName, part.Reader).
		Post(path)
	return adapt(resp, err)
}

func adapt(resp *resty.Response, err error) (Response, error) {
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// installLogHooks registers the before/after/error hooks. They only observe.
func installLogHooks(c *resty.Client, log Logger) {
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		log.DebugObj("making request", "http_request", map[string]any{
			"method": req.Method,
			"path":   req.URL,
		})
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.IsSuccess() {
			log.DebugObj("response received", "http_response", map[string]any{
				"status": resp.StatusCode(),
			})
			return nil
		}
		log.ErrorObj("response error", "http_response_error", map[string]any{
			"status": resp.StatusCode(),
			"body":   BodySnippet(resp.Body()),
		})
		return nil
	})
	c.OnError(func(req *resty.Request, err error) {
		fields := map[string]any{"error": err.Error()}
		if req != nil {
			fields["path"] = req.URL
		}
		var respErr *resty.ResponseError
		if errors.As(err, &respErr) && respErr.Response != nil {
			fields["status"] = respErr.Response.StatusCode()
			fields["body"] = BodySnippet(respErr.Response.Body())
		}
		log.ErrorObj("request error", "http_error", fields)
	})
}

// BodySnippet returns at most the first 512 bytes of body, trimmed.
func BodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > bodySnippetLimit {
		body = body[:bodySnippetLimit]
	}
	return strings.TrimSpace(string(body))
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }
func (r *restyResponseAdapter) IsSuccess() bool { return r.resp.IsSuccess() }
