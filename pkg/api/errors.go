package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/Adda-Baaj/nievex-client/pkg/httpclient"
)

var (
	// ErrNilFile is returned by UploadFile when no payload is given.
	ErrNilFile = errors.New("file payload is required")
	// ErrEmptyURL is returned by CreateShortURL when the target URL is blank.
	ErrEmptyURL = errors.New("url is required")
	// ErrUnexpectedStatus is wrapped by *Error when the service replies with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Error is the single failure type returned by Client operations. StatusCode
// is zero when no response was received.
type Error struct {
	Op         string
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		msg := fmt.Sprintf("%s %s %s: status %d", e.Op, e.Method, e.Path, e.StatusCode)
		if snippet := httpclient.BodySnippet(e.Body); snippet != "" {
			msg += ": " + snippet
		}
		return msg
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsTimeout reports whether err is a deadline expiry.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
