package notification

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
)

// Dispatcher sends messages over e-mail and push without ever failing the caller.
type Dispatcher struct {
	cfg    Config
	email  EmailSender
	push   PushSender
	logger *slog.Logger
}

// NewDispatcher builds Dispatcher; push may be nil when push delivery is disabled.
func NewDispatcher(cfg Config, email EmailSender, push PushSender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{cfg: cfg, email: email, push: push, logger: logger}
}

// StaffRecipients returns configured restaurant inboxes.
func (d *Dispatcher) StaffRecipients() []string {
	return append([]string(nil), d.cfg.StaffRecipients...)
}

// Send delivers msg on every applicable channel within the configured timeout.
// Failures are logged and reflected in the report.
func (d *Dispatcher) Send(ctx context.Context, msg Message) DeliveryReport {
	if d.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.Timeout)
		defer cancel()
	}

	var report DeliveryReport

	if len(msg.To) > 0 && d.email != nil {
		if err := d.email.SendEmail(ctx, d.cfg.From, msg); err != nil {
			d.logger.Warn("email notification failed",
				slog.String("transport", d.email.Name()),
				slog.String("subject", msg.Subject),
				slog.String("error", fmt.Errorf("%w: %w", domainErrors.ErrTransport, err).Error()))
		} else {
			report.EmailSent = true
		}
	}

	if msg.PushToken != "" && d.push != nil {
		title, body := msg.PushTitle, msg.PushBody
		if body == "" {
			body = msg.Body
		}
		if err := d.push.Push(ctx, msg.PushToken, title, body); err != nil {
			d.logger.Warn("push notification failed",
				slog.String("subject", msg.Subject),
				slog.String("error", fmt.Errorf("%w: %w", domainErrors.ErrTransport, err).Error()))
		} else {
			report.PushSent = true
		}
	}

	return report
}
