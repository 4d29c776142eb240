package eventx

import (
	"context"
	"fmt"
	"reflect"
)

// EventHandler is a function that processes events
type EventHandler func(Event) error

// TypedEventHandler provides type-safe event handling
type TypedEventHandler[T any] func(TypedEvent[T]) error

// EventBus delivers published events to the handlers subscribed to their type
type EventBus interface {
	// Subscribe registers an event handler for a specific event type
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error

	// Unsubscribe removes handlers for a specific event type
	Unsubscribe(ctx context.Context, eventType string) error

	// Publish publishes an event to all registered handlers
	Publish(ctx context.Context, event Event) error

	// ListEventTypes returns all registered event types
	ListEventTypes() []string

	// HandlerCount returns the number of handlers for an event type
	HandlerCount(eventType string) int
}

// SubscribeTyped registers a typed event handler
func SubscribeTyped[T any](ctx context.Context, bus EventBus, eventType string, handler TypedEventHandler[T]) error {
	return bus.Subscribe(ctx, eventType, func(e Event) error {
		if typedEvent, ok := e.(TypedEvent[T]); ok {
			return handler(typedEvent)
		}
		return ErrInvalidEventType.New("").
			WithDetail("expected_type", reflect.TypeOf((*T)(nil)).Elem().String()).
			WithDetail("actual_type", fmt.Sprintf("%T", e.Payload())).
			WithDetail("event_type", e.Type())
	})
}
