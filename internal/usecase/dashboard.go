package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
)

const (
	recentOrdersLimit    = 10
	defaultRevenueMonths = 6
	monthApproximation   = 30 * 24 * time.Hour
)

// DashboardUseCase computes staff dashboard aggregates.
type DashboardUseCase struct {
	orders   repository.OrderRepository
	location *time.Location
	months   int
	now      func() time.Time
}

// NewDashboardUseCase constructs DashboardUseCase; months below one fall back to six.
func NewDashboardUseCase(orders repository.OrderRepository, location *time.Location, months int, now func() time.Time) *DashboardUseCase {
	if location == nil {
		location = time.UTC
	}
	if months < 1 {
		months = defaultRevenueMonths
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardUseCase{orders: orders, location: location, months: months, now: now}
}

// Summary aggregates counts and revenue over orders matching status and date.
func (u *DashboardUseCase) Summary(ctx context.Context, principal *model.Principal, status, date string) (model.DashboardSummary, error) {
	if err := requireStaff(principal); err != nil {
		return model.DashboardSummary{}, err
	}

	base := model.OrderFilter{Status: strings.TrimSpace(status)}
	if strings.TrimSpace(date) != "" {
		from, to, err := dayRange(date, u.location)
		if err != nil {
			return model.DashboardSummary{}, err
		}
		base.From, base.To = &from, &to
	}

	summary := model.DashboardSummary{
		TotalRevenue: decimal.Zero,
		TodayRevenue: decimal.Zero,
	}

	total, err := u.orders.Stats(ctx, base)
	if err != nil {
		return model.DashboardSummary{}, err
	}
	summary.TotalOrders, summary.TotalRevenue = total.Count, total.Revenue

	now := u.now().In(u.location)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.location)
	today, err := u.statsWithin(ctx, base, todayStart, todayStart.AddDate(0, 0, 1))
	if err != nil {
		return model.DashboardSummary{}, err
	}
	summary.TodayOrders, summary.TodayRevenue = today.Count, today.Revenue

	if summary.PendingOrders, err = u.countWithStatus(ctx, base, model.OrderStatusPending); err != nil {
		return model.DashboardSummary{}, err
	}
	if summary.DeliveredCount, err = u.countWithStatus(ctx, base, model.OrderStatusDelivered); err != nil {
		return model.DashboardSummary{}, err
	}
	if summary.InFlightOrders, err = u.orders.CountByStatuses(ctx, model.InFlightStatuses); err != nil {
		return model.DashboardSummary{}, err
	}

	recentFilter := base
	recentFilter.Limit = recentOrdersLimit
	if summary.RecentOrders, err = u.orders.List(ctx, recentFilter); err != nil {
		return model.DashboardSummary{}, err
	}

	if summary.Monthly, err = u.monthly(ctx, base, now); err != nil {
		return model.DashboardSummary{}, err
	}
	return summary, nil
}

// monthly walks back i*30 days from now and buckets by the calendar month reached.
func (u *DashboardUseCase) monthly(ctx context.Context, base model.OrderFilter, now time.Time) ([]model.MonthlyRevenue, error) {
	out := make([]model.MonthlyRevenue, 0, u.months)
	for i := u.months - 1; i >= 0; i-- {
		point := now.Add(-time.Duration(i) * monthApproximation)
		start := time.Date(point.Year(), point.Month(), 1, 0, 0, 0, 0, u.location)
		stats, err := u.statsWithin(ctx, base, start, start.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		out = append(out, model.MonthlyRevenue{Year: start.Year(), Month: start.Month(), Revenue: stats.Revenue})
	}
	return out, nil
}

// statsWithin intersects base with [from, to); an empty intersection yields zero stats.
func (u *DashboardUseCase) statsWithin(ctx context.Context, base model.OrderFilter, from, to time.Time) (model.OrderStats, error) {
	f := base
	if f.From == nil || from.After(*f.From) {
		f.From = &from
	}
	if f.To == nil || to.Before(*f.To) {
		f.To = &to
	}
	if !f.From.Before(*f.To) {
		return model.OrderStats{Revenue: decimal.Zero}, nil
	}
	return u.orders.Stats(ctx, f)
}

func (u *DashboardUseCase) countWithStatus(ctx context.Context, base model.OrderFilter, status model.OrderStatus) (int64, error) {
	if base.Status != "" && !strings.EqualFold(base.Status, string(status)) {
		return 0, nil
	}
	f := base
	f.Status = string(status)
	stats, err := u.orders.Stats(ctx, f)
	if err != nil {
		return 0, err
	}
	return stats.Count, nil
}
