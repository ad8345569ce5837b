package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/sushibar/internal/config"
)

// Module wires notification transports, dispatcher and background queue.
var Module = fx.Options(
	fx.Provide(
		NewConfig,
		newEmailSender,
		newPushSender,
		newDispatcher,
		newQueue,
	),
	fx.Invoke(registerLifecycle),
)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newEmailSender(p senderParams) (EmailSender, error) {
	mail := p.Config.Mail
	switch mail.Transport {
	case "smtp":
		return NewSMTPSender(mail.SMTPHost, mail.SMTPPort, mail.SMTPUser, mail.SMTPPass), nil
	case "api":
		return NewAPISender(mail.APIURL, mail.APIKey, p.Logger)
	case "log", "":
		return NewLogSender(p.Logger), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", mail.Transport)
	}
}

func newPushSender(cfg *config.Config) (PushSender, error) {
	if !cfg.Push.Enabled {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return NewSNSPush(ctx, cfg.Push.Region, cfg.Push.Endpoint)
}

type dispatcherParams struct {
	fx.In

	Config Config
	Email  EmailSender
	Push   PushSender
	Logger *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Config, p.Email, p.Push, p.Logger)
}

type queueParams struct {
	fx.In

	Dispatcher *Dispatcher
	AppConfig  *config.Config
	Logger     *slog.Logger
}

func newQueue(p queueParams) *Queue {
	return NewQueue(p.Dispatcher, p.AppConfig.Notify.Workers, p.AppConfig.Notify.QueueSize, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, q *Queue) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			q.Start(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			q.Stop()
			return nil
		},
	})
}
