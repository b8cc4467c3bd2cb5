package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter fans events out to handlers registered in-process.
// The API runs as a single binary, so in-memory dispatch is all the
// indirection needed between services and the task layer.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes a handler to every subsequent event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("event handler registered", "handler_count", count)
}

// EmitEvent delivers the event to every registered handler. A failing
// handler does not stop delivery to the rest; the first error comes back
// to the caller.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskRequestEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	if len(handlers) == 0 {
		// Normally a wiring mistake: an event nobody is listening for.
		e.logger.Warn("event emitted with no handlers registered",
			"event_id", event.ID,
			"event_type", event.Type)
		return nil
	}

	var firstErr error
	for i, handler := range handlers {
		err := handler.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		e.logger.Error("event handler failed",
			"error", err,
			"handler_index", i,
			"event_id", event.ID,
			"event_type", event.Type)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
