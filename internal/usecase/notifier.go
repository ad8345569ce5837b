package usecase

import (
	"context"

	"github.com/polkiloo/sushibar/internal/notification"
)

// Notifier delivers a message synchronously and reports per-channel outcome.
type Notifier interface {
	Send(ctx context.Context, msg notification.Message) notification.DeliveryReport
	StaffRecipients() []string
}

// NotificationQueue accepts fire-and-forget messages.
type NotificationQueue interface {
	Enqueue(msg notification.Message) bool
}
