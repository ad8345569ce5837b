package notification

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the application log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string {
	return "log"
}

func (s *LogSender) SendEmail(_ context.Context, from string, msg Message) error {
	s.logger.Info("email",
		slog.String("from", from),
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body))
	return nil
}
