// Package events provides the synchronous event bus and the domain-event
// log that the effect and requirement interpreters share.
package events

import "log/slog"

// Handler receives an event payload. Handlers run synchronously on the
// emitter's call stack, in registration order.
type Handler func(payload any)

// AnyHandler receives every emitted event with its type. Used for
// listeners that match on token prefixes rather than exact types.
type AnyHandler func(eventType string, payload any)

// Bus is a minimal synchronous publish/subscribe hub. A panicking
// listener is isolated: it cannot abort the emit or starve later
// listeners.
type Bus struct {
	handlers map[string][]Handler
	catchAll []AnyHandler
	logger   *slog.Logger
}

// NewBus creates an empty bus. The logger may be nil.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// On registers a handler for an event type.
func (b *Bus) On(eventType string, h Handler) {
	if eventType == "" || h == nil {
		return
	}
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// OnAny registers a handler for every event type. Catch-all handlers
// run after the type's exact handlers.
func (b *Bus) OnAny(h AnyHandler) {
	if h != nil {
		b.catchAll = append(b.catchAll, h)
	}
}

// Emit delivers the payload to every handler of the type before
// returning. Delivery order is registration order.
func (b *Bus) Emit(eventType string, payload any) {
	for _, h := range b.handlers[eventType] {
		b.dispatch(eventType, h, payload)
	}
	for _, h := range b.catchAll {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Warn("event listener panicked", "type", eventType, "panic", r)
				}
			}()
			h(eventType, payload)
		}()
	}
}

func (b *Bus) dispatch(eventType string, h Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn("event listener panicked", "type", eventType, "panic", r)
		}
	}()
	h(payload)
}

// Clear drops all registered handlers.
func (b *Bus) Clear() {
	b.handlers = make(map[string][]Handler)
	b.catchAll = nil
}
