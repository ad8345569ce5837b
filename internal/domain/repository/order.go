package repository

import (
	"context"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	CreateBatch(ctx context.Context, orders []model.Order) ([]int64, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, reason *string) error
	Delete(ctx context.Context, id int64) error
	CountByStatuses(ctx context.Context, statuses []model.OrderStatus) (int64, error)
	Stats(ctx context.Context, filter model.OrderFilter) (model.OrderStats, error)
}
