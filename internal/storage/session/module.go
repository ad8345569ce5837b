package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/sushibar/internal/config"
	"github.com/polkiloo/sushibar/internal/domain/repository"
)

// Module provides the visitor session store.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newStore(p storeParams) (repository.SessionStore, error) {
	if p.Config.RedisURL == "" {
		p.Logger.Warn("redis url not configured, using in-memory sessions")
		return NewMemoryStore(p.Config.SessionTTL), nil
	}

	opts, err := redis.ParseURL(p.Config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	store := NewRedisStore(redis.NewClient(opts), p.Config.SessionTTL)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			p.Logger.Info("connected to redis", slog.String("addr", opts.Addr))
			return nil
		},
		OnStop: func(context.Context) error {
			return store.Close()
		},
	})
	return store, nil
}
