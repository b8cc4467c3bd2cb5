package sms

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSenderKeepsCodeOutOfInfoLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	sender := NewLogSender("TailoRent", logger)

	message := OTPMessage("482913")
	require.NoError(t, sender.Send(context.Background(), "+2348012345678", message))

	assert.NotEmpty(t, buf.String())
	assert.False(t, strings.Contains(buf.String(), "482913"),
		"OTP code must not appear in Info-level logs")
}

func TestOTPMessage(t *testing.T) {
	message := OTPMessage("123456")
	assert.Contains(t, message, "123456")
	assert.Contains(t, message, "10 minutes")
}
