// Package events carries notification requests from the service layer to the
// background task machinery. Services emit a TaskRequestEvent after their
// transaction commits; a handler on the other side turns it into a queued
// task. Neither side imports the other.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskRequestEvent asks for a background task of the given type. The payload
// is pre-serialized JSON so the event can cross package boundaries without
// the emitter knowing the concrete payload type.
type TaskRequestEvent struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewTaskRequestEvent serializes payload and wraps it in an event.
func NewTaskRequestEvent(taskType string, payload any) (*TaskRequestEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      taskType,
		Payload:   raw,
		CreatedAt: time.Now(),
	}, nil
}

// UnmarshalPayload decodes the payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler consumes events. Implementations decide which event types
// they care about and ignore the rest.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter is the producer side. Services hold this interface so tests
// can swap in a recording fake.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
