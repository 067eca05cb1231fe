package httpclient

import (
	"context"
	"io"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	IsSuccess() bool
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Paths are resolved against the client's base URL.
type Client interface {
	Get(ctx context.Context, path string) (Response, error)
	PostJSON(ctx context.Context, path string, body any) (Response, error)
	PostMultipart(ctx context.Context, path string, part FilePart) (Response, error)
}

// FilePart is a single file field of a multipart form body.
type FilePart struct {
	Field    string
	FileName string
	Reader   io.Reader
}

// Logger defines the logging surface the transport hooks rely on.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) InfoObj(string, string, interface{})  {}
func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) WarnObj(string, string, interface{})  {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

// EnsureLogger returns log, or a logger that discards everything when log is nil.
func EnsureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}
