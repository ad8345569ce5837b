package dto

import (
	"time"

	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// ContactRequest is the public contact form.
type ContactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Input converts request to use case input.
func (r ContactRequest) Input() usecase.ContactInput {
	return usecase.ContactInput{Name: r.Name, Email: r.Email, Message: r.Message}
}

// ReservationRequest is the public table booking form.
type ReservationRequest struct {
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	Mobile string `json:"mobile" form:"mobile"`
	Guests int    `json:"guests" form:"guests"`
	Date   string `json:"date" form:"date"`
	Time   string `json:"time" form:"time"`
	Note   string `json:"note" form:"note"`
}

// Input converts request to use case input.
func (r ReservationRequest) Input() usecase.ReservationInput {
	return usecase.ReservationInput{
		Name:   r.Name,
		Email:  r.Email,
		Mobile: r.Mobile,
		Guests: r.Guests,
		Date:   r.Date,
		Time:   r.Time,
		Note:   r.Note,
	}
}

type ContactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Guests      int       `json:"guests"`
	ReservedFor time.Time `json:"reserved_for"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewContactResponse(c model.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func NewContactsResponse(list []model.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, NewContactResponse(c))
	}
	return out
}

func NewReservationResponse(r model.Reservation, loc *time.Location) ReservationResponse {
	at := r.ReservedFor
	if loc != nil {
		at = at.In(loc)
	}
	return ReservationResponse{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Mobile:      r.Mobile,
		Guests:      r.Guests,
		ReservedFor: at,
		Note:        r.Note,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
	}
}

func NewReservationsResponse(list []model.Reservation, loc *time.Location) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, NewReservationResponse(r, loc))
	}
	return out
}
