package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
	"github.com/polkiloo/sushibar/internal/notification"
)

// ContactUseCase stores contact messages and forwards them to the restaurant.
type ContactUseCase struct {
	contacts repository.ContactRepository
	notifier Notifier
	queue    NotificationQueue
	logger   *slog.Logger
}

// NewContactUseCase constructs ContactUseCase.
func NewContactUseCase(contacts repository.ContactRepository, notifier Notifier, queue NotificationQueue, logger *slog.Logger) *ContactUseCase {
	return &ContactUseCase{contacts: contacts, notifier: notifier, queue: queue, logger: logger}
}

// Submit persists a contact message and e-mails staff.
func (u *ContactUseCase) Submit(ctx context.Context, in ContactInput) (*model.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	contact, err := u.contacts.Create(ctx, model.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Status:  model.ContactStatusNew,
	})
	if err != nil {
		return nil, err
	}

	if recipients := u.notifier.StaffRecipients(); len(recipients) > 0 {
		if !u.queue.Enqueue(notification.ContactMessage(recipients, *contact)) {
			u.logger.Warn("contact notification dropped", slog.Int64("contact_id", contact.ID))
		}
	}
	return contact, nil
}

// List returns contact messages, optionally narrowed to one status.
func (u *ContactUseCase) List(ctx context.Context, principal *model.Principal, status string) ([]model.Contact, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	return u.contacts.List(ctx, strings.ToLower(strings.TrimSpace(status)))
}

// Decide marks a contact message answered or rejected.
func (u *ContactUseCase) Decide(ctx context.Context, principal *model.Principal, id int64, decision model.ReviewDecision) (*model.Contact, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	var status model.ContactStatus
	switch decision {
	case model.DecisionAccept:
		status = model.ContactStatusAnswered
	case model.DecisionReject:
		status = model.ContactStatusRejected
	default:
		return nil, domainErrors.ErrUnknownAction
	}

	contact, err := u.contacts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.contacts.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	contact.Status = status
	return contact, nil
}
