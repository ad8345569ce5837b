package dto

import (
	"time"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

// MetricsResponse is the compact dashboard header.
type MetricsResponse struct {
	TotalOrders    int64  `json:"total_orders"`
	TodayOrders    int64  `json:"today_orders"`
	PendingOrders  int64  `json:"pending_orders"`
	DeliveredCount int64  `json:"delivered_count"`
	InFlightOrders int64  `json:"in_flight"`
	TotalRevenue   string `json:"total_revenue"`
	TodayRevenue   string `json:"today_revenue"`
}

// MonthPoint is one bar of the revenue chart.
type MonthPoint struct {
	Label   string `json:"label"`
	Revenue string `json:"revenue"`
}

// DashboardResponse is the full dashboard payload.
type DashboardResponse struct {
	MetricsResponse
	RecentOrders []OrderResponse `json:"recent_orders"`
	Monthly      []MonthPoint    `json:"monthly_revenue"`
}

// NewMetricsResponse maps counts and revenue only.
func NewMetricsResponse(s model.DashboardSummary) MetricsResponse {
	return MetricsResponse{
		TotalOrders:    s.TotalOrders,
		TodayOrders:    s.TodayOrders,
		PendingOrders:  s.PendingOrders,
		DeliveredCount: s.DeliveredCount,
		InFlightOrders: s.InFlightOrders,
		TotalRevenue:   s.TotalRevenue.StringFixed(2),
		TodayRevenue:   s.TodayRevenue.StringFixed(2),
	}
}

// NewDashboardResponse maps the complete summary.
func NewDashboardResponse(s model.DashboardSummary, loc *time.Location) DashboardResponse {
	resp := DashboardResponse{
		MetricsResponse: NewMetricsResponse(s),
		RecentOrders:    NewOrderListResponse(s.RecentOrders, loc),
		Monthly:         make([]MonthPoint, 0, len(s.Monthly)),
	}
	for _, m := range s.Monthly {
		resp.Monthly = append(resp.Monthly, MonthPoint{Label: m.Label(), Revenue: m.Revenue.StringFixed(2)})
	}
	return resp
}
