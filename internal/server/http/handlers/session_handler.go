package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/server/http/dto"
	"github.com/polkiloo/sushibar/internal/server/http/middleware"
)

// SessionHandler exposes one-shot session state to the storefront.
type SessionHandler struct {
	sessions SessionFacade
}

// NewSessionHandler creates SessionHandler instance.
func NewSessionHandler(sessions SessionFacade) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// LastOrders handles GET /order/last; ids are returned once.
func (h *SessionHandler) LastOrders(c *gin.Context) {
	ids := []int64{}
	if sessionID := middleware.SessionID(c); sessionID != "" {
		popped, err := h.sessions.PopLastOrders(c.Request.Context(), sessionID)
		if err != nil {
			writeError(c, err)
			return
		}
		if len(popped) > 0 {
			ids = popped
		}
	}
	c.JSON(http.StatusOK, dto.LastOrdersResponse{OrderIDs: ids})
}

// Messages handles GET /session/messages.
func (h *SessionHandler) Messages(c *gin.Context) {
	flashes := []repository.Flash{}
	if sessionID := middleware.SessionID(c); sessionID != "" {
		popped, err := h.sessions.PopFlashes(c.Request.Context(), sessionID)
		if err != nil {
			writeError(c, err)
			return
		}
		if len(popped) > 0 {
			flashes = popped
		}
	}
	c.JSON(http.StatusOK, dto.MessagesResponse{Messages: flashes})
}
