package repository

import (
	"context"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

// ReservationRepository stores table bookings.
type ReservationRepository interface {
	Create(ctx context.Context, reservation model.Reservation) (*model.Reservation, error)
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	List(ctx context.Context, status string) ([]model.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status model.ReservationStatus) error
}
