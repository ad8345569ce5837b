package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/notification"
)

// TransitionResult is returned after a status change.
type TransitionResult struct {
	OrderID   int64
	Status    model.OrderStatus
	EmailSent bool
	PushSent  bool
	InFlight  int64
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders   repository.OrderRepository
	notifier Notifier
	queue    NotificationQueue
	location *time.Location
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, notifier Notifier, queue NotificationQueue, location *time.Location, logger *slog.Logger) *OrderUseCase {
	if location == nil {
		location = time.UTC
	}
	return &OrderUseCase{orders: orders, notifier: notifier, queue: queue, location: location, logger: logger}
}

// Submit validates and stores a single item or cart submission.
// Every line becomes one order row; the batch is written atomically.
func (u *OrderUseCase) Submit(ctx context.Context, principal *model.Principal, sub model.OrderSubmission) ([]int64, error) {
	sub.Email = strings.TrimSpace(sub.Email)
	if sub.Email == "" && principal != nil {
		sub.Email = principal.Email
	}
	if sub.Email == "" {
		return nil, domainErrors.NewValidationError("email required for guest orders")
	}
	if sub.Type == "" {
		sub.Type = model.OrderTypeNow
	}
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	delivery, _ := model.ParseDeliveryMethod(sub.Delivery)
	sub.Delivery = string(delivery)

	var scheduled *time.Time
	if sub.Type == model.OrderTypeLater {
		at, err := parseLocalDateTime(sub.ScheduledDate, sub.ScheduledTime, u.location)
		if err != nil {
			return nil, err
		}
		scheduled = &at
	}

	var token *string
	if t := strings.TrimSpace(sub.DeviceToken); t != "" {
		token = &t
	}

	orders := make([]model.Order, 0, len(sub.Lines))
	for _, line := range sub.Lines {
		orders = append(orders, model.Order{
			Item:         strings.TrimSpace(line.Name),
			Price:        line.Price,
			Quantity:     line.Quantity,
			Type:         sub.Type,
			ScheduledFor: scheduled,
			Email:        sub.Email,
			Mobile:       strings.TrimSpace(sub.Mobile),
			Address:      strings.TrimSpace(sub.Address),
			Delivery:     delivery,
			Status:       model.OrderStatusPending,
			DeviceToken:  token,
		})
	}

	ids, err := u.orders.CreateBatch(ctx, orders)
	if err != nil {
		return nil, err
	}

	u.announce(sub, ids)
	return ids, nil
}

func (u *OrderUseCase) announce(sub model.OrderSubmission, ids []int64) {
	msg, err := notification.NewOrderMessage(u.notifier.StaffRecipients(), sub, ids)
	if err != nil {
		u.logger.Error("render order notification", slog.Any("order_ids", ids), slog.String("error", err.Error()))
		return
	}
	if len(msg.To) == 0 {
		return
	}
	if !u.queue.Enqueue(msg) {
		u.logger.Warn("order notification dropped", slog.Any("order_ids", ids))
	}
}

// Transition applies a staff action to an order and notifies the customer.
func (u *OrderUseCase) Transition(ctx context.Context, principal *model.Principal, id int64, action model.OrderAction, reason string) (TransitionResult, error) {
	if err := requireStaff(principal); err != nil {
		return TransitionResult{}, err
	}
	target, ok := model.StaffTarget(action)
	if !ok {
		return TransitionResult{}, domainErrors.ErrUnknownAction
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return TransitionResult{}, err
	}
	if err := order.Status.ValidateTransition(target); err != nil {
		return TransitionResult{}, err
	}

	var cancelReason *string
	if target == model.OrderStatusCancelled {
		cancelReason = normalizeReason(reason)
	}
	return u.apply(ctx, order, target, cancelReason)
}

// CustomerAction lets the order owner confirm receipt or cancel a pending order.
func (u *OrderUseCase) CustomerAction(ctx context.Context, principal *model.Principal, id int64, action model.OrderAction) (TransitionResult, error) {
	if principal == nil {
		return TransitionResult{}, domainErrors.ErrUnauthorized
	}
	target, ok := model.CustomerTarget(action)
	if !ok {
		return TransitionResult{}, domainErrors.ErrUnknownAction
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return TransitionResult{}, domainErrors.ErrForbidden
		}
		return TransitionResult{}, err
	}
	if principal.Email == "" || !strings.EqualFold(order.Email, principal.Email) {
		return TransitionResult{}, domainErrors.ErrForbidden
	}

	allowedFrom := model.OrderStatusReady
	if target == model.OrderStatusCancelled {
		allowedFrom = model.OrderStatusPending
	}
	if order.Status != allowedFrom {
		return TransitionResult{}, &domainErrors.TransitionError{From: string(order.Status), To: string(target)}
	}
	return u.apply(ctx, order, target, nil)
}

func (u *OrderUseCase) apply(ctx context.Context, order *model.Order, target model.OrderStatus, reason *string) (TransitionResult, error) {
	if err := u.orders.UpdateStatus(ctx, order.ID, target, reason); err != nil {
		return TransitionResult{}, err
	}
	order.Status = target
	if reason != nil {
		order.CancellationReason = reason
	}

	report := u.notifier.Send(ctx, notification.StatusMessage(*order))

	result := TransitionResult{
		OrderID:   order.ID,
		Status:    target,
		EmailSent: report.EmailSent,
		PushSent:  report.PushSent,
	}
	inFlight, err := u.orders.CountByStatuses(ctx, model.InFlightStatuses)
	if err != nil {
		u.logger.Error("count in-flight orders", slog.String("error", err.Error()))
	} else {
		result.InFlight = inFlight
	}
	return result, nil
}

// History returns orders placed with the caller's email.
func (u *OrderUseCase) History(ctx context.Context, principal *model.Principal) ([]model.Order, error) {
	if principal == nil {
		return nil, domainErrors.ErrUnauthorized
	}
	if principal.Email == "" {
		return []model.Order{}, nil
	}
	return u.orders.List(ctx, model.OrderFilter{Email: principal.Email})
}

// Live returns every order still in flight.
func (u *OrderUseCase) Live(ctx context.Context, principal *model.Principal) ([]model.Order, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	return u.orders.List(ctx, model.OrderFilter{Statuses: model.InFlightStatuses})
}

// FoodTable returns orders the kitchen is working on.
func (u *OrderUseCase) FoodTable(ctx context.Context, principal *model.Principal) ([]model.Order, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	return u.orders.List(ctx, model.OrderFilter{Statuses: model.KitchenStatuses})
}

// ManageHistory lists all orders optionally narrowed by status and creation date.
func (u *OrderUseCase) ManageHistory(ctx context.Context, principal *model.Principal, status, date string) ([]model.Order, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	filter, err := u.filter(status, date)
	if err != nil {
		return nil, err
	}
	return u.orders.List(ctx, filter)
}

// Get returns one order for staff views.
func (u *OrderUseCase) Get(ctx context.Context, principal *model.Principal, id int64) (*model.Order, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	return u.orders.GetByID(ctx, id)
}

// Delete removes an order permanently.
func (u *OrderUseCase) Delete(ctx context.Context, principal *model.Principal, id int64) error {
	if err := requireStaff(principal); err != nil {
		return err
	}
	return u.orders.Delete(ctx, id)
}

func (u *OrderUseCase) filter(status, date string) (model.OrderFilter, error) {
	filter := model.OrderFilter{Status: strings.TrimSpace(status)}
	if strings.TrimSpace(date) != "" {
		from, to, err := dayRange(date, u.location)
		if err != nil {
			return model.OrderFilter{}, err
		}
		filter.From, filter.To = &from, &to
	}
	return filter, nil
}
