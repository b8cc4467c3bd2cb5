// Package sms provides SMS delivery behind a small Sender interface so the
// provider can be swapped (console, gateway API) without touching callers.
package sms

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tailorent/tailorent-api/internal/config"
)

// Sender delivers SMS messages.
type Sender interface {
	// Send delivers the message to the given phone number.
	Send(ctx context.Context, to, message string) error
}

// NewSender returns the configured SMS sender. Only log-based delivery is
// implemented; a real gateway integration would slot in here.
func NewSender(cfg config.SMSConfig, logger *slog.Logger) Sender {
	return NewLogSender(cfg.From, logger)
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	from   string
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs messages.
func NewLogSender(from string, logger *slog.Logger) *LogSender {
	return &LogSender{
		from:   from,
		logger: logger.With(slog.String("component", "log_sms_sender")),
	}
}

var _ Sender = (*LogSender)(nil)

// Send implements Sender.Send. The message body stays out of the Info record
// because OTP codes must not land in production logs; the Debug record carries
// it for local development.
func (s *LogSender) Send(ctx context.Context, to, message string) error {
	s.logger.Info("sms delivery skipped (log-only sender)",
		slog.String("from", s.from),
		slog.String("to", to),
		slog.Int("message_length", len(message)))
	s.logger.Debug("sms message body",
		slog.String("to", to),
		slog.String("message", message))
	return nil
}

// OTPMessage formats the one-time code text.
func OTPMessage(code string) string {
	return fmt.Sprintf("Your TailoRent verification code is %s. It expires in 10 minutes.", code)
}
