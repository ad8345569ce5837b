package handlers

import (
	"context"

	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, email, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Principal, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	SubmitOrder(ctx context.Context, principal *model.Principal, sub model.OrderSubmission) ([]int64, error)
	TransitionOrder(ctx context.Context, principal *model.Principal, id int64, action model.OrderAction, reason string) (usecase.TransitionResult, error)
	CustomerOrderAction(ctx context.Context, principal *model.Principal, id int64, action model.OrderAction) (usecase.TransitionResult, error)
	DeleteOrder(ctx context.Context, principal *model.Principal, id int64) error
	OrderHistory(ctx context.Context, principal *model.Principal) ([]model.Order, error)
	LiveOrders(ctx context.Context, principal *model.Principal) ([]model.Order, error)
	FoodTable(ctx context.Context, principal *model.Principal) ([]model.Order, error)
	ManageHistory(ctx context.Context, principal *model.Principal, status, date string) ([]model.Order, error)
}

// SessionFacade stores one-shot visitor state between a form post and the next page.
type SessionFacade interface {
	SaveLastOrders(ctx context.Context, sessionID string, ids []int64) error
	PopLastOrders(ctx context.Context, sessionID string) ([]int64, error)
	PushFlash(ctx context.Context, sessionID string, level, message string) error
	PopFlashes(ctx context.Context, sessionID string) ([]repository.Flash, error)
}

// MenuFacade provides menu browsing and staff maintenance.
type MenuFacade interface {
	Menu(ctx context.Context) (usecase.MenuView, error)
	FeaturedItems(ctx context.Context) ([]model.MenuItem, error)
	SearchMenu(ctx context.Context, query string) ([]usecase.SearchHit, error)
	CreateCategory(ctx context.Context, principal *model.Principal, in usecase.CategoryInput) (*model.MenuCategory, error)
	CreateMenuItem(ctx context.Context, principal *model.Principal, in usecase.MenuItemInput) (*model.MenuItem, error)
	UpdateMenuItem(ctx context.Context, principal *model.Principal, id int64, in usecase.MenuItemInput) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, principal *model.Principal, id int64) error
}

// ContactFacade handles contact messages.
type ContactFacade interface {
	SubmitContact(ctx context.Context, in usecase.ContactInput) (*model.Contact, error)
	Contacts(ctx context.Context, principal *model.Principal, status string) ([]model.Contact, error)
	DecideContact(ctx context.Context, principal *model.Principal, id int64, decision model.ReviewDecision) (*model.Contact, error)
}

// ReservationFacade handles table reservations.
type ReservationFacade interface {
	SubmitReservation(ctx context.Context, in usecase.ReservationInput) (*model.Reservation, error)
	Reservations(ctx context.Context, principal *model.Principal, status string) ([]model.Reservation, error)
	DecideReservation(ctx context.Context, principal *model.Principal, id int64, decision model.ReviewDecision) (*model.Reservation, error)
}

// DashboardFacade exposes staff aggregates.
type DashboardFacade interface {
	DashboardSummary(ctx context.Context, principal *model.Principal, status, date string) (model.DashboardSummary, error)
}

// HealthFacade checks backing services.
type HealthFacade interface {
	Ping(ctx context.Context) error
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	AuthFacade
	OrderFacade
	SessionFacade
	MenuFacade
	ContactFacade
	ReservationFacade
	DashboardFacade
	HealthFacade
}
