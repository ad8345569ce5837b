package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
)

// OrderStatus describes kitchen lifecycle of a single order row.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusMaking    OrderStatus = "Making"
	OrderStatusReady     OrderStatus = "Ready to Collect"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderType distinguishes immediate and scheduled orders.
type OrderType string

const (
	OrderTypeNow   OrderType = "now"
	OrderTypeLater OrderType = "later"
)

// DeliveryMethod lists known delivery options.
type DeliveryMethod string

const (
	DeliveryFree    DeliveryMethod = "Free"
	DeliveryExpress DeliveryMethod = "Express"
	DeliveryPickup  DeliveryMethod = "Pickup"
)

// ParseDeliveryMethod matches delivery option case-insensitively.
func ParseDeliveryMethod(v string) (DeliveryMethod, bool) {
	for _, m := range []DeliveryMethod{DeliveryFree, DeliveryExpress, DeliveryPickup} {
		if strings.EqualFold(strings.TrimSpace(v), string(m)) {
			return m, true
		}
	}
	return "", false
}

// Order is one line of a customer submission.
type Order struct {
	ID                 int64
	Item               string
	Price              decimal.Decimal
	Quantity           int
	Type               OrderType
	ScheduledFor       *time.Time
	Email              string
	Mobile             string
	Address            string
	Delivery           DeliveryMethod
	Status             OrderStatus
	CancellationReason *string
	DeviceToken        *string
	CreatedAt          time.Time
}

// TotalPrice returns price multiplied by quantity.
func (o Order) TotalPrice() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// CustomerName derives display name from email local part.
func (o Order) CustomerName() string {
	if i := strings.Index(o.Email, "@"); i >= 0 {
		return o.Email[:i]
	}
	return o.Email
}

// InFlight reports whether order still awaits completion.
func (s OrderStatus) InFlight() bool {
	return !s.Terminal()
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// InFlightStatuses is the canonical set counted as in-flight.
var InFlightStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusAccepted,
	OrderStatusMaking,
	OrderStatusReady,
}

// KitchenStatuses are shown on the food table board.
var KitchenStatuses = []OrderStatus{
	OrderStatusAccepted,
	OrderStatusMaking,
}

var progression = map[OrderStatus]int{
	OrderStatusPending:   0,
	OrderStatusAccepted:  1,
	OrderStatusMaking:    2,
	OrderStatusReady:     3,
	OrderStatusDelivered: 4,
}

// CanTransition checks move against the order lifecycle table.
// Forward steps may skip stages; cancellation is allowed from any non-terminal state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	from, ok := progression[s]
	if !ok {
		return false
	}
	to, ok := progression[next]
	if !ok {
		return false
	}
	return to > from
}

// ValidateTransition returns a typed error when move is not allowed.
func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if !s.CanTransition(next) {
		return &domainErrors.TransitionError{From: string(s), To: string(next)}
	}
	return nil
}

// OrderAction is a staff or customer command token.
type OrderAction string

const (
	ActionAccept    OrderAction = "accept"
	ActionMaking    OrderAction = "making"
	ActionCollect   OrderAction = "collect"
	ActionDelivered OrderAction = "delivered"
	ActionCancel    OrderAction = "cancel"

	ActionCustomerGet OrderAction = "get"
	ActionCustomerOut OrderAction = "out"
)

var staffActions = map[OrderAction]OrderStatus{
	ActionAccept:    OrderStatusAccepted,
	ActionMaking:    OrderStatusMaking,
	ActionCollect:   OrderStatusReady,
	ActionDelivered: OrderStatusDelivered,
	ActionCancel:    OrderStatusCancelled,
}

var customerActions = map[OrderAction]OrderStatus{
	ActionCustomerGet: OrderStatusDelivered,
	ActionCustomerOut: OrderStatusDelivered,
	ActionCancel:      OrderStatusCancelled,
}

// StaffTarget maps staff action to resulting status.
func StaffTarget(action OrderAction) (OrderStatus, bool) {
	s, ok := staffActions[action]
	return s, ok
}

// CustomerTarget maps customer self-service action to resulting status.
func CustomerTarget(action OrderAction) (OrderStatus, bool) {
	s, ok := customerActions[action]
	return s, ok
}

// OrderLine is a normalized cart entry.
type OrderLine struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// Total returns line price multiplied by quantity.
func (l OrderLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// OrderSubmission is the canonical payload produced at the request boundary.
type OrderSubmission struct {
	Lines         []OrderLine
	Cart          bool
	Email         string
	Mobile        string
	Address       string
	Delivery      string
	Type          OrderType
	ScheduledDate string
	ScheduledTime string
	DeviceToken   string
}

// OrderFilter narrows order listings and dashboard aggregates.
type OrderFilter struct {
	Statuses []OrderStatus
	Status   string
	Email    string
	From     *time.Time
	To       *time.Time
	Limit    int
}
