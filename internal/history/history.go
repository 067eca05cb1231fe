// Package history keeps a local journal of uploads and short links created
// through the client. It is never read before a remote call.
package history

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a history entry.
type Kind string

const (
	KindUpload   Kind = "upload"
	KindShortURL Kind = "short_url"
)

// Entry is one successful remote operation.
type Entry struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Subject   string          `json:"subject"`
	Response  json.RawMessage `json:"response,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store persists history entries.
type Store interface {
	Close() error
	Record(e Entry) error
	List() ([]Entry, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	EntryTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultEntryTTL        = 30 * 24 * time.Hour
	defaultCleanupInterval = 24 * time.Hour
)

// NewStore creates the configured history backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt history requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported history type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error           { return nil }
func (noopStore) Record(Entry) error     { return nil }
func (noopStore) List() ([]Entry, error) { return nil, nil }
