package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tailorent/tailorent-api/internal/events"
)

// notificationKinds is the set of event types this handler turns into tasks.
var notificationKinds = map[string]bool{
	TaskTypeVerificationEmail:    true,
	TaskTypeWelcomeEmail:         true,
	TaskTypeOTPSMS:               true,
	TaskTypeBookingRequestEmail:  true,
	TaskTypeBookingDecisionEmail: true,
}

// NotificationEventHandler implements the events.EventHandler interface,
// converting notification request events into persisted background tasks.
type NotificationEventHandler struct {
	factory *NotificationTaskFactory
	runner  *TaskRunner
	logger  *slog.Logger
}

// NewNotificationEventHandler creates a new event handler that uses the given
// factory to create tasks and submits them to the provided runner.
func NewNotificationEventHandler(
	factory *NotificationTaskFactory,
	runner *TaskRunner,
	logger *slog.Logger,
) *NotificationEventHandler {
	return &NotificationEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "notification_event_handler"),
	}
}

// HandleEvent processes events by creating and submitting notification tasks.
// Events with types outside the notification set are ignored.
func (h *NotificationEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if !notificationKinds[event.Type] {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	task, err := h.factory.CreateTask(event.Type, event.Payload)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"event_type", event.Type,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("notification task submitted",
		"task_id", task.ID(),
		"task_type", event.Type,
		"event_id", event.ID)
	return nil
}

// Ensure NotificationEventHandler implements events.EventHandler
var _ events.EventHandler = (*NotificationEventHandler)(nil)
