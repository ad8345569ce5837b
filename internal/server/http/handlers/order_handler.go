package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/server/http/dto"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
)

const (
	liveOrdersPath   = "/order/live"
	orderHistoryPath = "/order/history"
)

// OrderHandler serves order submission, status transitions and order lists.
type OrderHandler struct {
	orders   OrderFacade
	sessions SessionFacade
	cartPage string
	location *time.Location
	logger   *slog.Logger
	flasher
}

// NewOrderHandler creates OrderHandler; form submissions redirect to cartPage.
func NewOrderHandler(orders OrderFacade, sessions SessionFacade, cartPage string, location *time.Location, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		sessions: sessions,
		cartPage: cartPage,
		location: location,
		logger:   logger,
		flasher:  flasher{sessions: sessions, logger: logger},
	}
}

// Submit handles POST /order/submit for JSON and form callers.
func (h *OrderHandler) Submit(c *gin.Context) {
	jsonMode := wantsJSON(c)
	payload, err := decodePayload(c)
	if err != nil {
		if jsonMode {
			writeBadRequest(c, invalidJSONMessage)
			return
		}
		h.redirect(c, flashError, "Invalid form submission", h.cartPage)
		return
	}

	sub := dto.NormalizeOrderPayload(payload)
	ids, err := h.orders.SubmitOrder(c.Request.Context(), middleware.CurrentPrincipal(c), sub)
	if err != nil {
		if jsonMode {
			writeError(c, err)
			return
		}
		h.redirectError(c, err, h.cartPage)
		return
	}

	if jsonMode {
		c.JSON(http.StatusOK, dto.SubmitResponse{Success: true, OrderIDs: ids})
		return
	}

	if sessionID := middleware.SessionID(c); sessionID != "" {
		if err := h.sessions.SaveLastOrders(c.Request.Context(), sessionID, ids); err != nil {
			h.logger.Warn("store last order ids", slog.String("error", err.Error()))
		}
	}
	h.redirect(c, flashSuccess, submittedMessage(ids), h.cartPage)
}

func submittedMessage(ids []int64) string {
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, fmt.Sprintf("#%d", id))
	}
	return "Thank you! Your order " + strings.Join(refs, ", ") + " has been placed."
}

// AdminAction handles POST /order/:id/admin-action.
func (h *OrderHandler) AdminAction(c *gin.Context) {
	jsonMode := wantsJSON(c)
	target := backTo(c, liveOrdersPath)

	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, jsonMode, "invalid order id", target)
		return
	}
	var req dto.ActionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, jsonMode, invalidJSONMessage, target)
		return
	}

	action := model.OrderAction(strings.ToLower(strings.TrimSpace(req.Action)))
	result, err := h.orders.TransitionOrder(c.Request.Context(), middleware.CurrentPrincipal(c), id, action, req.Reason)
	if err != nil {
		if jsonMode {
			writeError(c, err)
			return
		}
		h.redirectError(c, err, target)
		return
	}

	if jsonMode {
		c.JSON(http.StatusOK, dto.NewTransitionResponse(result))
		return
	}
	h.redirect(c, flashSuccess, fmt.Sprintf("Order #%d is now %s.", id, result.Status), target)
}

// CustomerAction handles POST /order/:id/action.
func (h *OrderHandler) CustomerAction(c *gin.Context) {
	jsonMode := wantsJSON(c)
	target := backTo(c, orderHistoryPath)

	id, ok := pathID(c, "id")
	if !ok {
		h.fail(c, jsonMode, "invalid order id", target)
		return
	}
	var req dto.ActionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, jsonMode, invalidJSONMessage, target)
		return
	}

	action := model.OrderAction(strings.ToLower(strings.TrimSpace(req.Action)))
	result, err := h.orders.CustomerOrderAction(c.Request.Context(), middleware.CurrentPrincipal(c), id, action)
	if err != nil {
		if jsonMode {
			writeError(c, err)
			return
		}
		h.redirectError(c, err, target)
		return
	}

	if jsonMode {
		c.JSON(http.StatusOK, dto.NewTransitionResponse(result))
		return
	}
	h.redirect(c, flashSuccess, fmt.Sprintf("Order #%d is now %s.", id, result.Status), target)
}

func (h *OrderHandler) fail(c *gin.Context, jsonMode bool, msg, target string) {
	if jsonMode {
		writeBadRequest(c, msg)
		return
	}
	h.redirect(c, flashError, msg, target)
}

// Delete handles DELETE /order/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		writeBadRequest(c, "invalid order id")
		return
	}
	if err := h.orders.DeleteOrder(c.Request.Context(), middleware.CurrentPrincipal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Success: true})
}

// History handles GET /order/history.
func (h *OrderHandler) History(c *gin.Context) {
	orders, err := h.orders.OrderHistory(c.Request.Context(), middleware.CurrentPrincipal(c))
	h.writeOrders(c, orders, err)
}

// Live handles GET /order/live.
func (h *OrderHandler) Live(c *gin.Context) {
	orders, err := h.orders.LiveOrders(c.Request.Context(), middleware.CurrentPrincipal(c))
	h.writeOrders(c, orders, err)
}

// FoodTable handles GET /order/food-table.
func (h *OrderHandler) FoodTable(c *gin.Context) {
	orders, err := h.orders.FoodTable(c.Request.Context(), middleware.CurrentPrincipal(c))
	h.writeOrders(c, orders, err)
}

// ManageHistory handles GET /order/manage-history?status=&date=.
func (h *OrderHandler) ManageHistory(c *gin.Context) {
	orders, err := h.orders.ManageHistory(c.Request.Context(), middleware.CurrentPrincipal(c), c.Query("status"), c.Query("date"))
	h.writeOrders(c, orders, err)
}

func (h *OrderHandler) writeOrders(c *gin.Context, orders []model.Order, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderListResponse(orders, h.location))
}
