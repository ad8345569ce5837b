package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/notification"
)

// ReservationUseCase handles table bookings.
type ReservationUseCase struct {
	reservations repository.ReservationRepository
	notifier     Notifier
	queue        NotificationQueue
	location     *time.Location
	now          func() time.Time
	logger       *slog.Logger
}

// NewReservationUseCase constructs ReservationUseCase.
func NewReservationUseCase(reservations repository.ReservationRepository, notifier Notifier, queue NotificationQueue, location *time.Location, now func() time.Time, logger *slog.Logger) *ReservationUseCase {
	if location == nil {
		location = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ReservationUseCase{
		reservations: reservations,
		notifier:     notifier,
		queue:        queue,
		location:     location,
		now:          now,
		logger:       logger,
	}
}

// Submit stores a pending reservation and alerts staff.
func (u *ReservationUseCase) Submit(ctx context.Context, in ReservationInput) (*model.Reservation, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Note = strings.TrimSpace(in.Note)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	at, err := parseLocalDateTime(in.Date, in.Time, u.location)
	if err != nil {
		return nil, err
	}
	if !at.After(u.now()) {
		return nil, domainErrors.NewValidationError("reservation must be in the future")
	}

	reservation, err := u.reservations.Create(ctx, model.Reservation{
		Name:        in.Name,
		Email:       in.Email,
		Mobile:      in.Mobile,
		Guests:      in.Guests,
		ReservedFor: at,
		Note:        in.Note,
		Status:      model.ReservationStatusPending,
	})
	if err != nil {
		return nil, err
	}

	if recipients := u.notifier.StaffRecipients(); len(recipients) > 0 {
		msg, err := notification.ReservationRequestMessage(recipients, *reservation, u.location)
		if err != nil {
			u.logger.Error("render reservation notification", slog.Int64("reservation_id", reservation.ID), slog.String("error", err.Error()))
		} else if !u.queue.Enqueue(msg) {
			u.logger.Warn("reservation notification dropped", slog.Int64("reservation_id", reservation.ID))
		}
	}
	return reservation, nil
}

// List returns reservations, optionally narrowed to one status.
func (u *ReservationUseCase) List(ctx context.Context, principal *model.Principal, status string) ([]model.Reservation, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	return u.reservations.List(ctx, strings.ToLower(strings.TrimSpace(status)))
}

// Decide accepts or rejects a pending reservation and informs the guest.
func (u *ReservationUseCase) Decide(ctx context.Context, principal *model.Principal, id int64, decision model.ReviewDecision) (*model.Reservation, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	var status model.ReservationStatus
	switch decision {
	case model.DecisionAccept:
		status = model.ReservationStatusAccepted
	case model.DecisionReject:
		status = model.ReservationStatusRejected
	default:
		return nil, domainErrors.ErrUnknownAction
	}

	reservation, err := u.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation.Status != model.ReservationStatusPending {
		return nil, &domainErrors.TransitionError{From: string(reservation.Status), To: string(status)}
	}
	if err := u.reservations.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	reservation.Status = status

	msg, err := notification.ReservationDecisionMessage(*reservation, u.location)
	if err != nil {
		u.logger.Error("render reservation decision", slog.Int64("reservation_id", id), slog.String("error", err.Error()))
	} else if !u.queue.Enqueue(msg) {
		u.logger.Warn("reservation decision dropped", slog.Int64("reservation_id", id))
	}
	return reservation, nil
}
