package dto

import (
	"time"

	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// OrderResponse is one order row as exposed by list endpoints.
type OrderResponse struct {
	ID                 int64     `json:"id"`
	Item               string    `json:"item"`
	Price              string    `json:"price"`
	Quantity           int       `json:"qty"`
	TotalPrice         string    `json:"total_price"`
	OrderType          string    `json:"order_type"`
	ScheduledDate      string    `json:"scheduled_date,omitempty"`
	ScheduledTime      string    `json:"scheduled_time,omitempty"`
	Email              string    `json:"email"`
	CustomerName       string    `json:"customer_name"`
	Mobile             string    `json:"mobile"`
	Address            string    `json:"address"`
	Delivery           string    `json:"delivery"`
	Status             string    `json:"status"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// NewOrderResponse maps order to its JSON form; schedule is rendered in loc.
func NewOrderResponse(o model.Order, loc *time.Location) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		Item:         o.Item,
		Price:        o.Price.StringFixed(2),
		Quantity:     o.Quantity,
		TotalPrice:   o.TotalPrice().StringFixed(2),
		OrderType:    string(o.Type),
		Email:        o.Email,
		CustomerName: o.CustomerName(),
		Mobile:       o.Mobile,
		Address:      o.Address,
		Delivery:     string(o.Delivery),
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
	}
	if o.ScheduledFor != nil {
		at := *o.ScheduledFor
		if loc != nil {
			at = at.In(loc)
		}
		resp.ScheduledDate = at.Format("2006-01-02")
		resp.ScheduledTime = at.Format("15:04")
	}
	if o.CancellationReason != nil {
		resp.CancellationReason = *o.CancellationReason
	}
	return resp
}

// NewOrderListResponse maps a slice of orders.
func NewOrderListResponse(orders []model.Order, loc *time.Location) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o, loc))
	}
	return out
}

// SubmitResponse is returned to JSON callers of order submission.
type SubmitResponse struct {
	Success  bool    `json:"success"`
	OrderIDs []int64 `json:"order_ids"`
}

// LastOrdersResponse carries ids popped from the session.
type LastOrdersResponse struct {
	OrderIDs []int64 `json:"order_ids"`
}

// ActionRequest carries an optional cancellation reason.
type ActionRequest struct {
	Action string `json:"action" form:"action"`
	Reason string `json:"reason" form:"reason"`
}

// TransitionResponse reports a status change and notification outcome.
type TransitionResponse struct {
	Success   bool   `json:"success"`
	OrderID   int64  `json:"order_id"`
	Status    string `json:"status"`
	EmailSent bool   `json:"email_sent"`
	PushSent  bool   `json:"push_sent"`
	InFlight  int64  `json:"in_flight"`
}

// NewTransitionResponse maps a transition result.
func NewTransitionResponse(r usecase.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Success:   true,
		OrderID:   r.OrderID,
		Status:    string(r.Status),
		EmailSent: r.EmailSent,
		PushSent:  r.PushSent,
		InFlight:  r.InFlight,
	}
}
