package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/sushibar/internal/app"
	"github.com/polkiloo/sushibar/internal/config"
	"github.com/polkiloo/sushibar/internal/logger"
	"github.com/polkiloo/sushibar/internal/notification"
	"github.com/polkiloo/sushibar/internal/pkg/auth"
	"github.com/polkiloo/sushibar/internal/server/http/handlers"
	"github.com/polkiloo/sushibar/internal/server/http/router"
	"github.com/polkiloo/sushibar/internal/storage/postgres"
	"github.com/polkiloo/sushibar/internal/storage/session"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// Module composes the whole application; opts are appended last so tests can replace parts.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		session.Module,
		notification.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.RestaurantFacade) handlers.RestaurantFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
