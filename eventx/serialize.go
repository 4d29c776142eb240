package eventx

import (
	"encoding/json"
	"time"
)

// SerializableEvent is the wire form of an event
type SerializableEvent struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
	Version   string          `json:"version"`
	Data      json.RawMessage `json:"data"`
	Metadata  map[string]any  `json:"metadata"`
}

// ToJSON serializes an event to JSON
func ToJSON(event Event) ([]byte, error) {
	payload, err := json.Marshal(event.Payload())
	if err != nil {
		return nil, ErrSerializationFailed.New("encoding payload").
			WithCause(err).
			WithDetail("event_id", event.ID()).
			WithDetail("event_type", event.Type())
	}

	return json.Marshal(SerializableEvent{
		ID:        event.ID(),
		Type:      event.Type(),
		Timestamp: event.Timestamp(),
		Source:    event.Source(),
		Version:   event.Version(),
		Data:      payload,
		Metadata:  event.Metadata(),
	})
}

// FromJSON decodes an event whose payload is a T
func FromJSON[T any](data []byte) (TypedEvent[T], error) {
	var se SerializableEvent
	if err := json.Unmarshal(data, &se); err != nil {
		return nil, ErrSerializationFailed.New("decoding event").WithCause(err)
	}

	var payload T
	if err := json.Unmarshal(se.Data, &payload); err != nil {
		return nil, ErrSerializationFailed.New("decoding payload").
			WithCause(err).
			WithDetail("event_id", se.ID).
			WithDetail("event_type", se.Type)
	}

	return NewEventWithID(se.ID, se.Type, payload, se.Timestamp, EventOptions{
		Source:   se.Source,
		Version:  se.Version,
		Metadata: se.Metadata,
	}), nil
}
