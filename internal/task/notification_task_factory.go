package task

import (
	"encoding/json"
	"log/slog"

	"github.com/tailorent/tailorent-api/internal/platform/mail"
	"github.com/tailorent/tailorent-api/internal/platform/sms"
)

// NotificationTaskFactory creates NotificationTask instances with the
// delivery dependencies already bound.
type NotificationTaskFactory struct {
	mailer  mail.Sender
	texter  sms.Sender
	baseURL string
	logger  *slog.Logger
}

// NewNotificationTaskFactory creates a new factory for NotificationTasks
func NewNotificationTaskFactory(
	mailer mail.Sender,
	texter sms.Sender,
	baseURL string,
	logger *slog.Logger,
) *NotificationTaskFactory {
	return &NotificationTaskFactory{
		mailer:  mailer,
		texter:  texter,
		baseURL: baseURL,
		logger:  logger.With("component", "notification_task_factory"),
	}
}

// CreateTask creates a new NotificationTask of the given kind
func (f *NotificationTaskFactory) CreateTask(taskType string, payload json.RawMessage) (Task, error) {
	task, err := NewNotificationTask(
		taskType,
		payload,
		f.mailer,
		f.texter,
		f.baseURL,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
