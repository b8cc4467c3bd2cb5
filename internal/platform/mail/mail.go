// Package mail provides transactional email delivery over SMTP, with a
// log-only fallback for environments without a configured mail host.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/tailorent/tailorent-api/internal/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers email messages.
type Sender interface {
	// Send delivers the message. Returns an error if delivery fails.
	Send(ctx context.Context, msg Message) error
}

// NewSender returns an SMTP-backed sender when a mail host is configured and
// a log-only sender otherwise, so development environments work without an
// SMTP server.
func NewSender(cfg config.MailConfig, logger *slog.Logger) Sender {
	if cfg.Host == "" {
		logger.Warn("no mail host configured, email delivery disabled")
		return NewLogSender(logger)
	}
	return NewSMTPSender(cfg, logger)
}

// SMTPSender delivers mail through a plain-auth SMTP server.
type SMTPSender struct {
	cfg    config.MailConfig
	logger *slog.Logger
}

// NewSMTPSender creates a new SMTPSender with the given configuration.
func NewSMTPSender(cfg config.MailConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "smtp_sender")),
	}
}

var _ Sender = (*SMTPSender)(nil)

// Send implements Sender.Send
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n",
		s.cfg.From, msg.To, msg.Subject)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, []byte(headers+msg.Body)); err != nil {
		s.logger.Error("failed to send email",
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent", slog.String("subject", msg.Subject))
	return nil
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a sender that only logs messages.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{
		logger: logger.With(slog.String("component", "log_mail_sender")),
	}
}

var _ Sender = (*LogSender)(nil)

// Send implements Sender.Send
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("email delivery skipped (log-only sender)",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body))
	return nil
}
