package api

import (
	"encoding/json"
	"fmt"
)

// Payload is a response body exactly as the service sent it. The client does
// not interpret its shape.
type Payload json.RawMessage

// newPayload keeps valid JSON verbatim and encodes anything else as a JSON string.
func newPayload(body []byte) Payload {
	if json.Valid(body) {
		out := make([]byte, len(body))
		copy(out, body)
		return Payload(out)
	}
	encoded, _ := json.Marshal(string(body))
	return Payload(encoded)
}

// Decode unmarshals the payload into v.
func (p Payload) Decode(v any) error {
	if err := json.Unmarshal(p, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// MarshalJSON returns the payload unchanged.
func (p Payload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON stores a copy of data.
func (p *Payload) UnmarshalJSON(data []byte) error {
	if p == nil {
		return fmt.Errorf("payload: UnmarshalJSON on nil pointer")
	}
	*p = append((*p)[:0], data...)
	return nil
}

func (p Payload) String() string { return string(p) }
