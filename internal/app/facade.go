package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// HealthChecker reports whether the primary store answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// FacadeParams lists services composed by RestaurantFacade.
type FacadeParams struct {
	fx.In

	Auth         *usecase.AuthUseCase
	Orders       *usecase.OrderUseCase
	Dashboard    *usecase.DashboardUseCase
	Menu         *usecase.MenuUseCase
	Contacts     *usecase.ContactUseCase
	Reservations *usecase.ReservationUseCase
	Sessions     repository.SessionStore
	Health       HealthChecker
}

// RestaurantFacade adapts use cases to the HTTP layer.
type RestaurantFacade struct {
	auth         *usecase.AuthUseCase
	orders       *usecase.OrderUseCase
	dashboard    *usecase.DashboardUseCase
	menu         *usecase.MenuUseCase
	contacts     *usecase.ContactUseCase
	reservations *usecase.ReservationUseCase
	sessions     repository.SessionStore
	health       HealthChecker
}

func NewRestaurantFacade(p FacadeParams) *RestaurantFacade {
	return &RestaurantFacade{
		auth:         p.Auth,
		orders:       p.Orders,
		dashboard:    p.Dashboard,
		menu:         p.Menu,
		contacts:     p.Contacts,
		reservations: p.Reservations,
		sessions:     p.Sessions,
		health:       p.Health,
	}
}

func (f *RestaurantFacade) Register(ctx context.Context, login, email, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, usecase.CredentialsInput{Login: login, Email: email, Password: password})
	return token, err
}

func (f *RestaurantFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *RestaurantFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *RestaurantFacade) SubmitOrder(ctx context.Context, principal *model.Principal, sub model.OrderSubmission) ([]int64, error) {
	return f.orders.Submit(ctx, principal, sub)
}

func (f *RestaurantFacade) TransitionOrder(ctx context.Context, principal *model.Principal, id int64, action model.OrderAction, reason string) (usecase.TransitionResult, error) {
	return f.orders.Transition(ctx, principal, id, action, reason)
}

func (f *RestaurantFacade) CustomerOrderAction(ctx context.Context, principal *model.Principal, id int64, action model.OrderAction) (usecase.TransitionResult, error) {
	return f.orders.CustomerAction(ctx, principal, id, action)
}

func (f *RestaurantFacade) DeleteOrder(ctx context.Context, principal *model.Principal, id int64) error {
	return f.orders.Delete(ctx, principal, id)
}

func (f *RestaurantFacade) OrderHistory(ctx context.Context, principal *model.Principal) ([]model.Order, error) {
	return f.orders.History(ctx, principal)
}

func (f *RestaurantFacade) LiveOrders(ctx context.Context, principal *model.Principal) ([]model.Order, error) {
	return f.orders.Live(ctx, principal)
}

func (f *RestaurantFacade) FoodTable(ctx context.Context, principal *model.Principal) ([]model.Order, error) {
	return f.orders.FoodTable(ctx, principal)
}

func (f *RestaurantFacade) ManageHistory(ctx context.Context, principal *model.Principal, status, date string) ([]model.Order, error) {
	return f.orders.ManageHistory(ctx, principal, status, date)
}

func (f *RestaurantFacade) SaveLastOrders(ctx context.Context, sessionID string, ids []int64) error {
	return f.sessions.SaveLastOrders(ctx, sessionID, ids)
}

func (f *RestaurantFacade) PopLastOrders(ctx context.Context, sessionID string) ([]int64, error) {
	return f.sessions.PopLastOrders(ctx, sessionID)
}

func (f *RestaurantFacade) PushFlash(ctx context.Context, sessionID string, level, message string) error {
	return f.sessions.PushFlash(ctx, sessionID, level, message)
}

func (f *RestaurantFacade) PopFlashes(ctx context.Context, sessionID string) ([]repository.Flash, error) {
	return f.sessions.PopFlashes(ctx, sessionID)
}

func (f *RestaurantFacade) Menu(ctx context.Context) (usecase.MenuView, error) {
	return f.menu.Browse(ctx)
}

func (f *RestaurantFacade) FeaturedItems(ctx context.Context) ([]model.MenuItem, error) {
	return f.menu.Featured(ctx)
}

func (f *RestaurantFacade) SearchMenu(ctx context.Context, query string) ([]usecase.SearchHit, error) {
	return f.menu.Search(ctx, query)
}

func (f *RestaurantFacade) CreateCategory(ctx context.Context, principal *model.Principal, in usecase.CategoryInput) (*model.MenuCategory, error) {
	return f.menu.CreateCategory(ctx, principal, in)
}

func (f *RestaurantFacade) CreateMenuItem(ctx context.Context, principal *model.Principal, in usecase.MenuItemInput) (*model.MenuItem, error) {
	return f.menu.CreateItem(ctx, principal, in)
}

func (f *RestaurantFacade) UpdateMenuItem(ctx context.Context, principal *model.Principal, id int64, in usecase.MenuItemInput) (*model.MenuItem, error) {
	return f.menu.UpdateItem(ctx, principal, id, in)
}

func (f *RestaurantFacade) DeleteMenuItem(ctx context.Context, principal *model.Principal, id int64) error {
	return f.menu.DeleteItem(ctx, principal, id)
}

func (f *RestaurantFacade) SubmitContact(ctx context.Context, in usecase.ContactInput) (*model.Contact, error) {
	return f.contacts.Submit(ctx, in)
}

func (f *RestaurantFacade) Contacts(ctx context.Context, principal *model.Principal, status string) ([]model.Contact, error) {
	return f.contacts.List(ctx, principal, status)
}

func (f *RestaurantFacade) DecideContact(ctx context.Context, principal *model.Principal, id int64, decision model.ReviewDecision) (*model.Contact, error) {
	return f.contacts.Decide(ctx, principal, id, decision)
}

func (f *RestaurantFacade) SubmitReservation(ctx context.Context, in usecase.ReservationInput) (*model.Reservation, error) {
	return f.reservations.Submit(ctx, in)
}

func (f *RestaurantFacade) Reservations(ctx context.Context, principal *model.Principal, status string) ([]model.Reservation, error) {
	return f.reservations.List(ctx, principal, status)
}

func (f *RestaurantFacade) DecideReservation(ctx context.Context, principal *model.Principal, id int64, decision model.ReviewDecision) (*model.Reservation, error) {
	return f.reservations.Decide(ctx, principal, id, decision)
}

func (f *RestaurantFacade) DashboardSummary(ctx context.Context, principal *model.Principal, status, date string) (model.DashboardSummary, error) {
	return f.dashboard.Summary(ctx, principal, status, date)
}

func (f *RestaurantFacade) Ping(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
