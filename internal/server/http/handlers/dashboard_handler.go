package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sushibar/internal/server/http/dto"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
)

// DashboardHandler serves staff summaries.
type DashboardHandler struct {
	dashboard DashboardFacade
	location  *time.Location
}

// NewDashboardHandler creates DashboardHandler instance.
func NewDashboardHandler(dashboard DashboardFacade, location *time.Location) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, location: location}
}

// Metrics handles GET /dashboard/metrics?status=&date=.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	summary, err := h.dashboard.DashboardSummary(c.Request.Context(), middleware.CurrentPrincipal(c), c.Query("status"), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMetricsResponse(summary))
}

// Data handles GET /dashboard/data?status=&date=.
func (h *DashboardHandler) Data(c *gin.Context) {
	summary, err := h.dashboard.DashboardSummary(c.Request.Context(), middleware.CurrentPrincipal(c), c.Query("status"), c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewDashboardResponse(summary, h.location))
}
