package handlers

import (
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
	contactPagePath     = "/contact"
	reservationPagePath = "/reservation"
)

// InboxHandler receives contact messages and table reservations.
type InboxHandler struct {
	contacts     ContactFacade
	reservations ReservationFacade
	location     *time.Location
	flasher
}

// NewInboxHandler creates InboxHandler instance.
func NewInboxHandler(contacts ContactFacade, reservations ReservationFacade, sessions SessionFacade, location *time.Location, logger *slog.Logger) *InboxHandler {
	return &InboxHandler{
		contacts:     contacts,
		reservations: reservations,
		location:     location,
		flasher:      flasher{sessions: sessions, logger: logger},
	}
}

// SubmitContact handles POST /contact.
func (h *InboxHandler) SubmitContact(c *gin.Context) {
	jsonMode := wantsJSON(c)
	target := backTo(c, contactPagePath)

	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		h.reject(c, jsonMode, target)
		return
	}
	contact, err := h.contacts.SubmitContact(c.Request.Context(), req.Input())
	if err != nil {
		h.failed(c, jsonMode, err, target)
		return
	}
	if jsonMode {
		c.JSON(http.StatusCreated, dto.NewContactResponse(*contact))
		return
	}
	h.redirect(c, flashSuccess, "Thank you for your message. We will get back to you soon.", target)
}

// SubmitReservation handles POST /reservation.
func (h *InboxHandler) SubmitReservation(c *gin.Context) {
	jsonMode := wantsJSON(c)
	target := backTo(c, reservationPagePath)

	var req dto.ReservationRequest
	if err := c.ShouldBind(&req); err != nil {
		h.reject(c, jsonMode, target)
		return
	}
	reservation, err := h.reservations.SubmitReservation(c.Request.Context(), req.Input())
	if err != nil {
		h.failed(c, jsonMode, err, target)
		return
	}
	if jsonMode {
		c.JSON(http.StatusCreated, dto.NewReservationResponse(*reservation, h.location))
		return
	}
	h.redirect(c, flashSuccess, "Your reservation request has been received.", target)
}

// Contacts handles GET /dashboard/contacts?status=.
func (h *InboxHandler) Contacts(c *gin.Context) {
	list, err := h.contacts.Contacts(c.Request.Context(), middleware.CurrentPrincipal(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactsResponse(list))
}

// Reservations handles GET /dashboard/reservations?status=.
func (h *InboxHandler) Reservations(c *gin.Context) {
	list, err := h.reservations.Reservations(c.Request.Context(), middleware.CurrentPrincipal(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReservationsResponse(list, h.location))
}

// DecideContact handles POST /dashboard/contacts/:id/:action.
func (h *InboxHandler) DecideContact(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		writeBadRequest(c, "invalid contact id")
		return
	}
	contact, err := h.contacts.DecideContact(c.Request.Context(), middleware.CurrentPrincipal(c), id, decision(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewContactResponse(*contact))
}

// DecideReservation handles POST /dashboard/reservations/:id/:action.
func (h *InboxHandler) DecideReservation(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		writeBadRequest(c, "invalid reservation id")
		return
	}
	reservation, err := h.reservations.DecideReservation(c.Request.Context(), middleware.CurrentPrincipal(c), id, decision(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewReservationResponse(*reservation, h.location))
}

func decision(c *gin.Context) model.ReviewDecision {
	return model.ReviewDecision(strings.ToLower(c.Param("action")))
}

func (h *InboxHandler) reject(c *gin.Context, jsonMode bool, target string) {
	if jsonMode {
		writeBadRequest(c, invalidJSONMessage)
		return
	}
	h.redirect(c, flashError, "Invalid form submission", target)
}

func (h *InboxHandler) failed(c *gin.Context, jsonMode bool, err error, target string) {
	if jsonMode {
		writeError(c, err)
		return
	}
	h.redirectError(c, err, target)
}
