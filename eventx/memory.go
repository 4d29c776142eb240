package eventx

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"github.com/Abraxas-365/customerr/logx"
)

// MemoryBus is an in-process EventBus. Handlers run synchronously in
// subscription order on the publishing goroutine.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

// NewMemoryBus creates an empty in-memory bus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[string][]EventHandler),
	}
}

// Subscribe registers an event handler for a specific event type
func (b *MemoryBus) Subscribe(ctx context.Context, eventType string, handler EventHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if handler == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes every handler for eventType
func (b *MemoryBus) Unsubscribe(ctx context.Context, eventType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.handlers[eventType]; !ok {
		return ErrEventNotFound.New("").WithDetail("event_type", eventType)
	}
	delete(b.handlers, eventType)
	return nil
}

// Publish calls every handler subscribed to the event's type. Handler errors are
// joined; an event nobody listens to is dropped.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()

	var errs error
	for _, h := range handlers {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		if err := h(event); err != nil {
			logx.Debug("eventx: handler for %s failed: %v", event.Type(), err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// ListEventTypes returns the subscribed event types, sorted
func (b *MemoryBus) ListEventTypes() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	types := make([]string, 0, len(b.handlers))
	for t := range b.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// HandlerCount returns the number of handlers for an event type
func (b *MemoryBus) HandlerCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
