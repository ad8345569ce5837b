package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/sushibar/internal/config"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/notification"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewAuthUseCase,
		NewMenuUseCase,
		newOrderUseCase,
		newDashboardUseCase,
		newContactUseCase,
		newReservationUseCase,
	),
	fx.Invoke(registerStaffSeed),
)

type orderParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	Dispatcher *notification.Dispatcher
	Queue      *notification.Queue
	Orders     repository.OrderRepository
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Dispatcher, p.Queue, p.Config.Location, p.Logger)
}

type dashboardParams struct {
	fx.In

	Config *config.Config
	Orders repository.OrderRepository
}

func newDashboardUseCase(p dashboardParams) *DashboardUseCase {
	return NewDashboardUseCase(p.Orders, p.Config.Location, p.Config.DashboardMonths, time.Now)
}

type contactParams struct {
	fx.In

	Logger     *slog.Logger
	Dispatcher *notification.Dispatcher
	Queue      *notification.Queue
	Contacts   repository.ContactRepository
}

func newContactUseCase(p contactParams) *ContactUseCase {
	return NewContactUseCase(p.Contacts, p.Dispatcher, p.Queue, p.Logger)
}

type reservationParams struct {
	fx.In

	Config       *config.Config
	Logger       *slog.Logger
	Dispatcher   *notification.Dispatcher
	Queue        *notification.Queue
	Reservations repository.ReservationRepository
}

func newReservationUseCase(p reservationParams) *ReservationUseCase {
	return NewReservationUseCase(p.Reservations, p.Dispatcher, p.Queue, p.Config.Location, time.Now, p.Logger)
}

type staffSeedParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Auth      *AuthUseCase
}

func registerStaffSeed(p staffSeedParams) {
	account := p.Config.Staff
	if account.Login == "" {
		return
	}
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			in := CredentialsInput{Login: account.Login, Email: account.Email, Password: account.Password}
			created, err := p.Auth.EnsureStaff(ctx, in, model.Role(account.Role))
			if err != nil {
				return fmt.Errorf("seed staff account: %w", err)
			}
			if created {
				p.Logger.Info("staff account created", slog.String("login", account.Login), slog.String("role", account.Role))
			}
			return nil
		},
	})
}
