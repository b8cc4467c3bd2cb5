package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tailorent/tailorent-api/internal/platform/mail"
	"github.com/tailorent/tailorent-api/internal/platform/sms"
)

// Status constants for NotificationTask
// These match the TaskStatus values defined in task.go
const (
	statusPending    = "pending"
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// Common errors
var (
	ErrNilMailSender  = errors.New("mail sender cannot be nil")
	ErrNilSMSSender   = errors.New("sms sender cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrEmptyTaskType  = errors.New("task type cannot be empty")
	ErrUnknownKind    = errors.New("unknown notification kind")
	ErrEmptyRecipient = errors.New("notification recipient cannot be empty")
)

// VerificationEmailPayload carries the data for an account verification email.
type VerificationEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// WelcomeEmailPayload carries the data for a post-verification welcome email.
type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OTPSMSPayload carries the data for a one-time code text message.
type OTPSMSPayload struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// BookingRequestEmailPayload notifies a professional of a new pending booking.
type BookingRequestEmailPayload struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	CustomerName string    `json:"customer_name"`
	ServiceType  string    `json:"service_type"`
	Date         time.Time `json:"date"`
}

// BookingDecisionEmailPayload notifies a customer their booking was decided.
type BookingDecisionEmailPayload struct {
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ServiceType string    `json:"service_type"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
}

// NotificationTask implements the Task interface for delivering a single
// outbound notification (email or SMS) identified by its task type.
type NotificationTask struct {
	id       uuid.UUID
	taskType string
	payload  []byte
	mailer   mail.Sender
	texter   sms.Sender
	baseURL  string
	logger   *slog.Logger
	status   string
}

// NewNotificationTask creates a notification task of the given kind with an
// already-serialized payload.
func NewNotificationTask(
	taskType string,
	payload json.RawMessage,
	mailer mail.Sender,
	texter sms.Sender,
	baseURL string,
	logger *slog.Logger,
) (*NotificationTask, error) {
	if taskType == "" {
		return nil, ErrEmptyTaskType
	}
	if mailer == nil {
		return nil, ErrNilMailSender
	}
	if texter == nil {
		return nil, ErrNilSMSSender
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &NotificationTask{
		id:       uuid.New(),
		taskType: taskType,
		payload:  payload,
		mailer:   mailer,
		texter:   texter,
		baseURL:  baseURL,
		logger:   logger.With("task_type", taskType),
		status:   statusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *NotificationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *NotificationTask) Type() string {
	return t.taskType
}

// Payload returns the task data as a byte slice
func (t *NotificationTask) Payload() []byte {
	return t.payload
}

// Status returns the current task status
func (t *NotificationTask) Status() TaskStatus {
	return TaskStatus(t.status)
}

// Execute delivers the notification. Delivery failures mark the task failed;
// the runner records the error and the task can be retried after recovery.
func (t *NotificationTask) Execute(ctx context.Context) error {
	t.status = statusProcessing
	t.logger.Info("delivering notification")

	if err := ctx.Err(); err != nil {
		t.status = statusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	err := t.deliver(ctx)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("notification delivery failed", "error", err)
		return err
	}

	t.status = statusCompleted
	t.logger.Info("notification delivered")
	return nil
}

func (t *NotificationTask) deliver(ctx context.Context) error {
	switch t.taskType {
	case TaskTypeVerificationEmail:
		var p VerificationEmailPayload
		if err := json.Unmarshal(t.payload, &p); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		if p.Email == "" {
			return ErrEmptyRecipient
		}
		return t.mailer.Send(ctx, mail.VerificationMessage(p.Email, p.Name, t.baseURL, p.Token))

	case TaskTypeWelcomeEmail:
		var p WelcomeEmailPayload
		if err := json.Unmarshal(t.payload, &p); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		if p.Email == "" {
			return ErrEmptyRecipient
		}
		return t.mailer.Send(ctx, mail.WelcomeMessage(p.Email, p.Name))

	case TaskTypeOTPSMS:
		var p OTPSMSPayload
		if err := json.Unmarshal(t.payload, &p); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		if p.PhoneNumber == "" {
			return ErrEmptyRecipient
		}
		return t.texter.Send(ctx, p.PhoneNumber, sms.OTPMessage(p.Code))

	case TaskTypeBookingRequestEmail:
		var p BookingRequestEmailPayload
		if err := json.Unmarshal(t.payload, &p); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		if p.Email == "" {
			return ErrEmptyRecipient
		}
		return t.mailer.Send(ctx, mail.BookingRequestMessage(p.Email, p.Name, p.CustomerName, p.ServiceType, p.Date))

	case TaskTypeBookingDecisionEmail:
		var p BookingDecisionEmailPayload
		if err := json.Unmarshal(t.payload, &p); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
		if p.Email == "" {
			return ErrEmptyRecipient
		}
		return t.mailer.Send(ctx, mail.BookingDecisionMessage(p.Email, p.Name, p.ServiceType, p.Date, p.Status))

	default:
		return fmt.Errorf("%w: %s", ErrUnknownKind, t.taskType)
	}
}
