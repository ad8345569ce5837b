package model

import "time"

// ReservationStatus tracks staff handling of a table booking.
type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusAccepted ReservationStatus = "accepted"
	ReservationStatusRejected ReservationStatus = "rejected"
)

// Reservation is a table booking request.
type Reservation struct {
	ID          int64
	Name        string
	Email       string
	Mobile      string
	Guests      int
	ReservedFor time.Time
	Note        string
	Status      ReservationStatus
	CreatedAt   time.Time
}

// ReviewDecision is a staff accept/reject token shared by contacts and reservations.
type ReviewDecision string

const (
	DecisionAccept ReviewDecision = "accept"
	DecisionReject ReviewDecision = "reject"
)
