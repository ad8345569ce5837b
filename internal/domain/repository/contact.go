package repository

import (
	"context"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

// ContactRepository stores contact form messages.
type ContactRepository interface {
	Create(ctx context.Context, contact model.Contact) (*model.Contact, error)
	GetByID(ctx context.Context, id int64) (*model.Contact, error)
	List(ctx context.Context, status string) ([]model.Contact, error)
	UpdateStatus(ctx context.Context, id int64, status model.ContactStatus) error
}
