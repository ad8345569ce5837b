package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/notification"
	testhelpers "github.com/polkiloo/sushibar/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func zurich(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Zurich")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

type orderFixture struct {
	repo     *testhelpers.OrderRepositoryStub
	notifier *testhelpers.NotifierStub
	queue    *testhelpers.QueueStub
	uc       *OrderUseCase
}

func newOrderFixture(t *testing.T, seed ...model.Order) orderFixture {
	f := orderFixture{
		repo:     testhelpers.NewOrderRepositoryStub(seed...),
		notifier: &testhelpers.NotifierStub{Recipients: []string{"kitchen@sushibar.local"}, Report: notification.DeliveryReport{EmailSent: true}},
		queue:    &testhelpers.QueueStub{},
	}
	f.uc = NewOrderUseCase(f.repo, f.notifier, f.queue, zurich(t), discardLogger())
	return f
}

func validSubmission() model.OrderSubmission {
	return model.OrderSubmission{
		Lines: []model.OrderLine{
			{Name: "Salmon Nigiri", Price: decimal.RequireFromString("12"), Quantity: 2},
			{Name: "Miso Soup", Price: decimal.RequireFromString("5"), Quantity: 1},
		},
		Cart:     true,
		Email:    "guest@example.com",
		Mobile:   "0790000000",
		Address:  "Bahnhofstrasse 1",
		Delivery: "free",
		Type:     model.OrderTypeNow,
	}
}

func TestOrderSubmitCartCreatesOneRowPerLine(t *testing.T) {
	f := newOrderFixture(t)

	ids, err := f.uc.Submit(context.Background(), nil, validSubmission())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected ids %v", ids)
	}
	if len(f.repo.Batches) != 1 || len(f.repo.Batches[0]) != 2 {
		t.Fatalf("expected one atomic batch of two rows, got %v", f.repo.Batches)
	}
	for _, o := range f.repo.Batches[0] {
		if o.Status != model.OrderStatusPending || o.Delivery != model.DeliveryFree || o.Email != "guest@example.com" || o.ScheduledFor != nil {
			t.Fatalf("unexpected stored order %+v", o)
		}
	}

	msgs := f.queue.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one staff notification, got %d", len(msgs))
	}
	if msgs[0].To[0] != "kitchen@sushibar.local" || !strings.Contains(msgs[0].Body, "29.00 CHF") {
		t.Fatalf("unexpected notification %+v", msgs[0])
	}
}

func TestOrderSubmitUsesPrincipalEmail(t *testing.T) {
	f := newOrderFixture(t)
	sub := validSubmission()
	sub.Email = ""

	if _, err := f.uc.Submit(context.Background(), testhelpers.Customer("member@example.com"), sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.repo.Batches[0][0].Email != "member@example.com" {
		t.Fatalf("expected principal email, got %q", f.repo.Batches[0][0].Email)
	}
}

func TestOrderSubmitGuestWithoutEmail(t *testing.T) {
	f := newOrderFixture(t)
	sub := validSubmission()
	sub.Email = "  "

	_, err := f.uc.Submit(context.Background(), nil, sub)
	var vErr *domainErrors.ValidationError
	if !errors.As(err, &vErr) || vErr.Reason != "email required for guest orders" {
		t.Fatalf("expected guest email validation error, got %v", err)
	}
	if len(f.repo.Batches) != 0 || len(f.queue.Messages()) != 0 {
		t.Fatal("nothing must be written or sent")
	}
}

func TestOrderSubmitValidation(t *testing.T) {
	cases := map[string]func(*model.OrderSubmission){
		"empty cart":        func(s *model.OrderSubmission) { s.Lines = nil },
		"nameless line":     func(s *model.OrderSubmission) { s.Lines[1].Name = " " },
		"missing mobile":    func(s *model.OrderSubmission) { s.Mobile = "" },
		"missing address":   func(s *model.OrderSubmission) { s.Address = "" },
		"missing delivery":  func(s *model.OrderSubmission) { s.Delivery = "" },
		"unknown delivery":  func(s *model.OrderSubmission) { s.Delivery = "drone" },
		"later without day": func(s *model.OrderSubmission) { s.Type = model.OrderTypeLater; s.ScheduledTime = "19:00" },
		"later bad date":    func(s *model.OrderSubmission) { s.Type = model.OrderTypeLater; s.ScheduledDate = "20/10"; s.ScheduledTime = "19:00" },
		"unknown type":      func(s *model.OrderSubmission) { s.Type = "tomorrow" },
		"zero quantity":     func(s *model.OrderSubmission) { s.Lines[0].Quantity = 0 },
		"huge quantity":     func(s *model.OrderSubmission) { s.Lines[1].Quantity = 5000000000 },
		"huge price":        func(s *model.OrderSubmission) { s.Lines[1].Price = decimal.RequireFromString("123456789012") },
		"sub-cent price":    func(s *model.OrderSubmission) { s.Lines[0].Price = decimal.RequireFromString("0.005") },
		"malformed email":   func(s *model.OrderSubmission) { s.Email = "guest.example.com" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newOrderFixture(t)
			sub := validSubmission()
			mutate(&sub)
			if _, err := f.uc.Submit(context.Background(), nil, sub); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(f.repo.Batches) != 0 || len(f.queue.Messages()) != 0 {
				t.Fatal("invalid submission must not reach the repository or the queue")
			}
		})
	}
}

func TestOrderSubmitScheduled(t *testing.T) {
	f := newOrderFixture(t)
	sub := validSubmission()
	sub.Type = model.OrderTypeLater
	sub.ScheduledDate = "2026-10-20"
	sub.ScheduledTime = "19:30"
	sub.DeviceToken = "arn:endpoint"

	if _, err := f.uc.Submit(context.Background(), nil, sub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := f.repo.Batches[0][0]
	want := time.Date(2026, 10, 20, 19, 30, 0, 0, zurich(t))
	if stored.ScheduledFor == nil || !stored.ScheduledFor.Equal(want) {
		t.Fatalf("unexpected schedule %v", stored.ScheduledFor)
	}
	if stored.DeviceToken == nil || *stored.DeviceToken != "arn:endpoint" {
		t.Fatalf("expected device token to be stored")
	}
	if !strings.Contains(f.queue.Messages()[0].Body, "Scheduled for") {
		t.Fatal("expected schedule in staff notification")
	}
}

func TestOrderSubmitAtomicFailure(t *testing.T) {
	f := newOrderFixture(t)
	f.repo.CreateBatchFn = func(context.Context, []model.Order) ([]int64, error) {
		return nil, errors.New("insert order \"Miso Soup\": boom")
	}

	ids, err := f.uc.Submit(context.Background(), nil, validSubmission())
	if err == nil || ids != nil {
		t.Fatalf("expected failure without ids, got %v %v", ids, err)
	}
	if len(f.queue.Messages()) != 0 {
		t.Fatal("failed submission must not notify")
	}
}

func TestOrderSubmitSucceedsWhenQueueFull(t *testing.T) {
	f := newOrderFixture(t)
	f.queue.Full = true
	if _, err := f.uc.Submit(context.Background(), nil, validSubmission()); err != nil {
		t.Fatalf("notification failure must not fail submission: %v", err)
	}
}

func pendingOrder(id int64) model.Order {
	return model.Order{
		ID:        id,
		Item:      "Dragon Roll",
		Price:     decimal.RequireFromString("18.5"),
		Quantity:  1,
		Email:     "guest@example.com",
		Status:    model.OrderStatusPending,
		CreatedAt: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderTransitionAccept(t *testing.T) {
	f := newOrderFixture(t, pendingOrder(1), pendingOrder(2))

	res, err := f.uc.Transition(context.Background(), testhelpers.Staff(), 1, model.ActionAccept, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.OrderStatusAccepted || !res.EmailSent || res.PushSent || res.InFlight != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(f.notifier.Sent) != 1 || f.notifier.Sent[0].Body != "Your order has been accepted" || f.notifier.Sent[0].To[0] != "guest@example.com" {
		t.Fatalf("unexpected customer message %+v", f.notifier.Sent)
	}
}

func TestOrderTransitionCancelStoresTrimmedReason(t *testing.T) {
	order := pendingOrder(1)
	order.Status = model.OrderStatusMaking
	f := newOrderFixture(t, order)

	reason := "  " + strings.Repeat("x", 250) + "  "
	res, err := f.uc.Transition(context.Background(), testhelpers.Staff(), 1, model.ActionCancel, reason)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != model.OrderStatusCancelled || res.InFlight != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	stored := f.repo.UpdateCalls[0].Reason
	if stored == nil || len(*stored) != 200 {
		t.Fatalf("expected reason capped at 200 chars, got %v", stored)
	}
	if !strings.HasPrefix(f.notifier.Sent[0].Body, "Your order has been cancelled. Reason: xxx") {
		t.Fatalf("unexpected cancel body %q", f.notifier.Sent[0].Body)
	}
}

func TestOrderTransitionRejections(t *testing.T) {
	delivered := pendingOrder(2)
	delivered.Status = model.OrderStatusDelivered

	cases := []struct {
		name      string
		principal *model.Principal
		id        int64
		action    model.OrderAction
		want      error
	}{
		{"anonymous", nil, 1, model.ActionAccept, domainErrors.ErrUnauthorized},
		{"customer", testhelpers.Customer("guest@example.com"), 1, model.ActionAccept, domainErrors.ErrForbidden},
		{"unknown action", testhelpers.Staff(), 1, "explode", domainErrors.ErrUnknownAction},
		{"customer token", testhelpers.Staff(), 1, model.ActionCustomerGet, domainErrors.ErrUnknownAction},
		{"missing order", testhelpers.Staff(), 99, model.ActionAccept, domainErrors.ErrNotFound},
		{"terminal order", testhelpers.Staff(), 2, model.ActionMaking, domainErrors.ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(t, pendingOrder(1), delivered)
			if _, err := f.uc.Transition(context.Background(), tc.principal, tc.id, tc.action, ""); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(f.repo.UpdateCalls) != 0 || len(f.notifier.Sent) != 0 {
				t.Fatal("rejected transition must not mutate or notify")
			}
		})
	}
}

func TestOrderTransitionBackwardsRejected(t *testing.T) {
	order := pendingOrder(1)
	order.Status = model.OrderStatusMaking
	f := newOrderFixture(t, order)

	_, err := f.uc.Transition(context.Background(), testhelpers.Staff(), 1, model.ActionAccept, "")
	var tErr *domainErrors.TransitionError
	if !errors.As(err, &tErr) || tErr.From != "Making" || tErr.To != "Accepted" {
		t.Fatalf("expected typed transition error, got %v", err)
	}
}

func TestOrderTransitionSurvivesCountFailure(t *testing.T) {
	f := newOrderFixture(t, pendingOrder(1))
	f.repo.CountFn = func(context.Context, []model.OrderStatus) (int64, error) {
		return 0, errors.New("count failed")
	}
	res, err := f.uc.Transition(context.Background(), testhelpers.Staff(), 1, model.ActionMaking, "")
	if err != nil || res.Status != model.OrderStatusMaking {
		t.Fatalf("unexpected result %+v err=%v", res, err)
	}
}

func TestOrderCustomerAction(t *testing.T) {
	ready := pendingOrder(2)
	ready.Status = model.OrderStatusReady

	cases := []struct {
		name      string
		principal *model.Principal
		id        int64
		action    model.OrderAction
		want      error
		status    model.OrderStatus
	}{
		{"collect ready order", testhelpers.Customer("Guest@Example.com"), 2, model.ActionCustomerGet, nil, model.OrderStatusDelivered},
		{"confirm delivery", testhelpers.Customer("guest@example.com"), 2, model.ActionCustomerOut, nil, model.OrderStatusDelivered},
		{"cancel pending", testhelpers.Customer("guest@example.com"), 1, model.ActionCancel, nil, model.OrderStatusCancelled},
		{"cancel ready", testhelpers.Customer("guest@example.com"), 2, model.ActionCancel, domainErrors.ErrInvalidTransition, ""},
		{"collect pending", testhelpers.Customer("guest@example.com"), 1, model.ActionCustomerGet, domainErrors.ErrInvalidTransition, ""},
		{"other customer", testhelpers.Customer("other@example.com"), 1, model.ActionCancel, domainErrors.ErrForbidden, ""},
		{"missing order hidden", testhelpers.Customer("guest@example.com"), 99, model.ActionCancel, domainErrors.ErrForbidden, ""},
		{"staff action", testhelpers.Customer("guest@example.com"), 1, model.ActionAccept, domainErrors.ErrUnknownAction, ""},
		{"anonymous", nil, 1, model.ActionCancel, domainErrors.ErrUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(t, pendingOrder(1), ready)
			res, err := f.uc.CustomerAction(context.Background(), tc.principal, tc.id, tc.action)
			if tc.want != nil {
				if !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Status != tc.status {
				t.Fatalf("expected %s, got %s", tc.status, res.Status)
			}
		})
	}
}

func TestOrderListings(t *testing.T) {
	accepted := pendingOrder(2)
	accepted.Status = model.OrderStatusAccepted
	delivered := pendingOrder(3)
	delivered.Status = model.OrderStatusDelivered
	delivered.Email = "other@example.com"
	f := newOrderFixture(t, pendingOrder(1), accepted, delivered)
	ctx := context.Background()

	history, err := f.uc.History(ctx, testhelpers.Customer("guest@example.com"))
	if err != nil || len(history) != 2 {
		t.Fatalf("unexpected history %v err=%v", history, err)
	}
	if _, err := f.uc.History(ctx, nil); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	live, err := f.uc.Live(ctx, testhelpers.Staff())
	if err != nil || len(live) != 2 {
		t.Fatalf("unexpected live orders %v err=%v", live, err)
	}
	board, err := f.uc.FoodTable(ctx, testhelpers.Staff())
	if err != nil || len(board) != 1 || board[0].ID != 2 {
		t.Fatalf("unexpected food table %v err=%v", board, err)
	}
	if _, err := f.uc.Live(ctx, testhelpers.Customer("guest@example.com")); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	all, err := f.uc.ManageHistory(ctx, testhelpers.Staff(), "DELIVERED", "2026-10-16")
	if err != nil || len(all) != 1 || all[0].ID != 3 {
		t.Fatalf("unexpected manage history %v err=%v", all, err)
	}
	last := f.repo.Filters[len(f.repo.Filters)-1]
	if last.From == nil || last.To == nil || last.To.Sub(*last.From) != 24*time.Hour {
		t.Fatalf("expected one-day window, got %+v", last)
	}
	if _, err := f.uc.ManageHistory(ctx, testhelpers.Staff(), "", "16.10.2026"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}

func TestOrderGetAndDelete(t *testing.T) {
	f := newOrderFixture(t, pendingOrder(1))
	ctx := context.Background()

	if o, err := f.uc.Get(ctx, testhelpers.Staff(), 1); err != nil || o.ID != 1 {
		t.Fatalf("unexpected order %v err=%v", o, err)
	}
	if err := f.uc.Delete(ctx, testhelpers.Customer("guest@example.com"), 1); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := f.uc.Delete(ctx, testhelpers.Staff(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.uc.Delete(ctx, testhelpers.Staff(), 1); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
