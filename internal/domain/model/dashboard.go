package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStats is a count and revenue pair for a set of orders.
type OrderStats struct {
	Count   int64
	Revenue decimal.Decimal
}

// MonthlyRevenue is the revenue of one calendar month.
type MonthlyRevenue struct {
	Year    int
	Month   time.Month
	Revenue decimal.Decimal
}

// Label formats month bucket for charts.
func (m MonthlyRevenue) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// DashboardSummary aggregates order statistics for staff dashboards.
type DashboardSummary struct {
	TotalOrders    int64
	TodayOrders    int64
	PendingOrders  int64
	DeliveredCount int64
	InFlightOrders int64
	TotalRevenue   decimal.Decimal
	TodayRevenue   decimal.Decimal
	RecentOrders   []Order
	Monthly        []MonthlyRevenue
}
