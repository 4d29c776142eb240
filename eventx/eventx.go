package eventx

import (
	"time"

	"github.com/google/uuid"
)

// Event is the base interface for all events
type Event interface {
	ID() string
	Type() string
	Timestamp() time.Time
	Source() string
	Version() string
	Payload() any
	Metadata() map[string]any
}

// TypedEvent provides type-safe access to event data
type TypedEvent[T any] interface {
	Event
	Data() T
}

// EventOptions configure event creation
type EventOptions struct {
	Source   string
	Version  string
	Metadata map[string]any
}

// DefaultEventOptions returns default options
func DefaultEventOptions() EventOptions {
	return EventOptions{
		Source:   "errx",
		Version:  "1.0",
		Metadata: make(map[string]any),
	}
}

// BaseEvent implements TypedEvent for any payload type
type BaseEvent[T any] struct {
	id        string
	eventType string
	timestamp time.Time
	source    string
	version   string
	data      T
	metadata  map[string]any
}

// NewEvent creates a typed event with a fresh UUID and the current time
func NewEvent[T any](eventType string, data T, opts ...EventOptions) TypedEvent[T] {
	return NewEventWithID(uuid.New().String(), eventType, data, time.Now(), opts...)
}

// NewEventWithID creates an event with a known ID and timestamp, e.g. when decoding
func NewEventWithID[T any](id, eventType string, data T, timestamp time.Time, opts ...EventOptions) TypedEvent[T] {
	options := DefaultEventOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	if options.Metadata == nil {
		options.Metadata = make(map[string]any)
	}

	return &BaseEvent[T]{
		id:        id,
		eventType: eventType,
		timestamp: timestamp,
		source:    options.Source,
		version:   options.Version,
		data:      data,
		metadata:  options.Metadata,
	}
}

func (e *BaseEvent[T]) ID() string               { return e.id }
func (e *BaseEvent[T]) Type() string             { return e.eventType }
func (e *BaseEvent[T]) Timestamp() time.Time     { return e.timestamp }
func (e *BaseEvent[T]) Source() string           { return e.source }
func (e *BaseEvent[T]) Version() string          { return e.version }
func (e *BaseEvent[T]) Payload() any             { return e.data }
func (e *BaseEvent[T]) Metadata() map[string]any { return e.metadata }
func (e *BaseEvent[T]) Data() T                  { return e.data }
