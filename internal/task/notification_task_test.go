package task

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorent/tailorent-api/internal/platform/mail"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockMailSender records sent messages.
type mockMailSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *mockMailSender) Send(ctx context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockMailSender) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.Message, len(m.sent))
	copy(out, m.sent)
	return out
}

// mockSMSSender records sent texts.
type mockSMSSender struct {
	mu   sync.Mutex
	sent map[string]string
}

func newMockSMSSender() *mockSMSSender {
	return &mockSMSSender{sent: make(map[string]string)}
}

func (m *mockSMSSender) Send(ctx context.Context, to, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[to] = message
	return nil
}

func mustPayload(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestNewNotificationTask(t *testing.T) {
	mailer := &mockMailSender{}
	texter := newMockSMSSender()

	t.Run("valid", func(t *testing.T) {
		task, err := NewNotificationTask(TaskTypeWelcomeEmail, nil, mailer, texter, "http://localhost", testLogger())
		require.NoError(t, err)
		assert.Equal(t, TaskTypeWelcomeEmail, task.Type())
		assert.Equal(t, TaskStatusPending, task.Status())
		assert.NotEqual(t, uuid.Nil, task.ID())
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := NewNotificationTask("", nil, mailer, texter, "", testLogger())
		assert.ErrorIs(t, err, ErrEmptyTaskType)

		_, err = NewNotificationTask(TaskTypeWelcomeEmail, nil, nil, texter, "", testLogger())
		assert.ErrorIs(t, err, ErrNilMailSender)

		_, err = NewNotificationTask(TaskTypeWelcomeEmail, nil, mailer, nil, "", testLogger())
		assert.ErrorIs(t, err, ErrNilSMSSender)

		_, err = NewNotificationTask(TaskTypeWelcomeEmail, nil, mailer, texter, "", nil)
		assert.ErrorIs(t, err, ErrNilLogger)
	})
}

func TestExecuteVerificationEmail(t *testing.T) {
	ctx := context.Background()
	mailer := &mockMailSender{}
	texter := newMockSMSSender()

	payload := mustPayload(t, VerificationEmailPayload{
		Email: "ada@example.com",
		Name:  "Ada",
		Token: uuid.NewString(),
	})
	task, err := NewNotificationTask(TaskTypeVerificationEmail, payload, mailer, texter, "http://localhost:8080", testLogger())
	require.NoError(t, err)

	require.NoError(t, task.Execute(ctx))
	assert.Equal(t, TaskStatusCompleted, task.Status())

	sent := mailer.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "ada@example.com", sent[0].To)
	assert.Contains(t, sent[0].Body, "http://localhost:8080")
}

func TestExecuteOTPSMS(t *testing.T) {
	ctx := context.Background()
	mailer := &mockMailSender{}
	texter := newMockSMSSender()

	payload := mustPayload(t, OTPSMSPayload{PhoneNumber: "+2348012345678", Code: "123456"})
	task, err := NewNotificationTask(TaskTypeOTPSMS, payload, mailer, texter, "", testLogger())
	require.NoError(t, err)

	require.NoError(t, task.Execute(ctx))
	assert.Contains(t, texter.sent["+2348012345678"], "123456")
}

func TestExecuteBookingEmails(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("booking request", func(t *testing.T) {
		mailer := &mockMailSender{}
		payload := mustPayload(t, BookingRequestEmailPayload{
			Email:        "tunde@example.com",
			Name:         "Tunde",
			CustomerName: "Ada",
			ServiceType:  "Agbada fitting",
			Date:         date,
		})
		task, err := NewNotificationTask(TaskTypeBookingRequestEmail, payload, mailer, newMockSMSSender(), "", testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(ctx))
		sent := mailer.messages()
		require.Len(t, sent, 1)
		assert.Equal(t, "tunde@example.com", sent[0].To)
		assert.Contains(t, sent[0].Body, "Agbada fitting")
	})

	t.Run("booking decision", func(t *testing.T) {
		mailer := &mockMailSender{}
		payload := mustPayload(t, BookingDecisionEmailPayload{
			Email:       "ada@example.com",
			Name:        "Ada",
			ServiceType: "Agbada fitting",
			Date:        date,
			Status:      "accepted",
		})
		task, err := NewNotificationTask(TaskTypeBookingDecisionEmail, payload, mailer, newMockSMSSender(), "", testLogger())
		require.NoError(t, err)

		require.NoError(t, task.Execute(ctx))
		sent := mailer.messages()
		require.Len(t, sent, 1)
		assert.Contains(t, sent[0].Body, "accepted")
	})
}

func TestExecuteFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("empty recipient", func(t *testing.T) {
		payload := mustPayload(t, WelcomeEmailPayload{Name: "Ada"})
		task, err := NewNotificationTask(TaskTypeWelcomeEmail, payload, &mockMailSender{}, newMockSMSSender(), "", testLogger())
		require.NoError(t, err)

		err = task.Execute(ctx)
		assert.ErrorIs(t, err, ErrEmptyRecipient)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("unknown kind", func(t *testing.T) {
		task, err := NewNotificationTask("carrier_pigeon", nil, &mockMailSender{}, newMockSMSSender(), "", testLogger())
		require.NoError(t, err)

		err = task.Execute(ctx)
		assert.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("malformed payload", func(t *testing.T) {
		task, err := NewNotificationTask(TaskTypeWelcomeEmail, json.RawMessage(`{`), &mockMailSender{}, newMockSMSSender(), "", testLogger())
		require.NoError(t, err)

		assert.Error(t, task.Execute(ctx))
	})
}

func TestFactoryCreateTask(t *testing.T) {
	factory := NewNotificationTaskFactory(&mockMailSender{}, newMockSMSSender(), "http://localhost", testLogger())

	task, err := factory.CreateTask(TaskTypeWelcomeEmail, mustPayload(t, WelcomeEmailPayload{Email: "ada@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, TaskTypeWelcomeEmail, task.Type())

	_, err = factory.CreateTask("", nil)
	assert.ErrorIs(t, err, ErrEmptyTaskType)
}
