package publishers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event kinds.
const (
	KindFileUploaded    = "file.uploaded"
	KindShortURLCreated = "short_url.created"
)

// Event represents the payload published downstream after a successful operation.
type Event struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Subject   string          `json:"subject"`
	Response  json.RawMessage `json:"response,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewEvent constructs an Event for subject with the service's raw response.
func NewEvent(kind, subject string, response []byte) Event {
	return Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Subject:   subject,
		Response:  response,
		CreatedAt: time.Now().UTC(),
	}
}
