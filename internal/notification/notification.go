package notification

import (
	"context"
	"time"

	"github.com/polkiloo/sushibar/internal/config"
)

// Message is a single outbound notification. E-mail goes to To, push goes to PushToken when set.
type Message struct {
	To        []string
	Subject   string
	Body      string
	HTML      bool
	PushToken string
	PushTitle string
	PushBody  string
}

// DeliveryReport tells which channels accepted the message.
type DeliveryReport struct {
	EmailSent bool
	PushSent  bool
}

// EmailSender delivers one e-mail message.
type EmailSender interface {
	SendEmail(ctx context.Context, from string, msg Message) error
	Name() string
}

// PushSender delivers one push notification to a device endpoint.
type PushSender interface {
	Push(ctx context.Context, token, title, body string) error
}

// Config is the explicit dispatcher configuration resolved at startup.
type Config struct {
	From            string
	StaffRecipients []string
	Timeout         time.Duration
}

// NewConfig extracts dispatcher settings from application config.
func NewConfig(cfg *config.Config) Config {
	return Config{
		From:            cfg.Mail.From,
		StaffRecipients: append([]string(nil), cfg.Mail.Recipients...),
		Timeout:         cfg.Notify.Timeout,
	}
}
