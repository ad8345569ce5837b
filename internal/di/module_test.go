package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/sushibar/internal/app"
	"github.com/polkiloo/sushibar/internal/config"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/notification"
	"github.com/polkiloo/sushibar/internal/storage/postgres"
	"github.com/polkiloo/sushibar/internal/test"
	"github.com/polkiloo/sushibar/internal/usecase"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		JWTSecret:       "secret",
		TokenTTL:        time.Hour,
		ShutdownTimeout: time.Millisecond,
		Location:        time.UTC,
		CartPagePath:    "/cart",
		SessionTTL:      time.Minute,
		RateLimitBurst:  1,
		DashboardMonths: 6,
		Mail:            config.MailConfig{Transport: "log", From: "orders@sushibar.local"},
		Notify:          config.NotifyConfig{Timeout: time.Second, Workers: 1, QueueSize: 1},
	}
}

func storageReplacements() fx.Option {
	return fx.Options(
		fx.Replace(&postgres.Storage{}),
		fx.Replace(
			fx.Annotate(test.NewUserRepositoryStub(), fx.As(new(repository.UserRepository))),
			fx.Annotate(test.NewOrderRepositoryStub(), fx.As(new(repository.OrderRepository))),
			fx.Annotate(test.NewMenuRepositoryStub(), fx.As(new(repository.MenuRepository))),
			fx.Annotate(test.NewContactRepositoryStub(), fx.As(new(repository.ContactRepository))),
			fx.Annotate(test.NewReservationRepositoryStub(), fx.As(new(repository.ReservationRepository))),
		),
	)
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	var (
		facade  *app.RestaurantFacade
		orders  *usecase.OrderUseCase
		queue   *notification.Queue
		engine  *gin.Engine
		server  *http.Server
		storage *postgres.Storage
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(logger),
			storageReplacements(),
		),
		fx.Populate(&facade, &orders, &queue, &engine, &server, &storage),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	if facade == nil || orders == nil || queue == nil || engine == nil {
		t.Fatal("expected application graph to be populated")
	}
	if server.Handler != engine {
		t.Fatal("expected server to serve the router")
	}
	if storage == nil {
		t.Fatal("expected storage replacement to be used")
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
}

func TestModuleRejectsUnknownMailTransport(t *testing.T) {
	cfg := testConfig()
	cfg.Mail.Transport = "pigeon"

	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
			storageReplacements(),
		),
		fx.Invoke(func(*app.RestaurantFacade) {}),
	)
	if fxApp.Err() == nil {
		t.Fatal("expected graph error for unknown mail transport")
	}
}
