package realtime

import (
	"encoding/json"
	"fmt"
)

// Gateway event names. The same two events flow in both directions:
// clients emit them to request a mutation, and the server rebroadcasts them
// to all connections once the mutation has been persisted.
const (
	EventNoteAdded   = "note added"
	EventNoteDeleted = "note deleted"
)

// Envelope is the wire format for every gateway message.
// "note added" carries a Note payload, "note deleted" carries an id string.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// notePayload is the client-supplied body of an inbound "note added" event.
// Store-assigned fields sent by over-eager clients are ignored.
type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func encodeEnvelope(event string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %q payload: %w", event, err)
	}
	data, err := json.Marshal(Envelope{Event: event, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("encode %q envelope: %w", event, err)
	}
	return data, nil
}

func decodeNotePayload(env Envelope) (title, content string, err error) {
	var p notePayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return "", "", fmt.Errorf("decode note payload: %w", err)
	}
	return p.Title, p.Content, nil
}

func decodeIDPayload(env Envelope) (string, error) {
	var id string
	if err := json.Unmarshal(env.Payload, &id); err != nil {
		return "", fmt.Errorf("decode id payload: %w", err)
	}
	return id, nil
}
