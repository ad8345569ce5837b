package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, item, price::text, quantity, order_type, scheduled_for, email, mobile, address, delivery, status, cancellation_reason, device_token, created_at`

// CreateBatch inserts all rows inside one transaction so a cart is stored whole or not at all.
func (r *orderRepository) CreateBatch(ctx context.Context, orders []model.Order) ([]int64, error) {
	const query = `INSERT INTO orders (item, price, quantity, order_type, scheduled_for, email, mobile, address, delivery, status, device_token)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
                   RETURNING id`

	ids := make([]int64, 0, len(orders))
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, o := range orders {
			var id int64
			err := tx.QueryRow(ctx, query,
				o.Item, o.Price, o.Quantity, o.Type, o.ScheduledFor,
				o.Email, o.Mobile, o.Address, o.Delivery, o.Status, o.DeviceToken,
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("insert order %q: %w", o.Item, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	row := r.storage.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	where, args := orderFilterClause(filter)
	query := `SELECT ` + orderColumns + ` FROM orders` + where + ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, reason *string) error {
	const query = `UPDATE orders SET status=$1, cancellation_reason=COALESCE($2, cancellation_reason) WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, reason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) CountByStatuses(ctx context.Context, statuses []model.OrderStatus) (int64, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	var count int64
	err := r.storage.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = ANY($1)`, values).Scan(&count)
	return count, err
}

// Stats returns row count and revenue for the filtered orders; revenue is zero when nothing matches.
func (r *orderRepository) Stats(ctx context.Context, filter model.OrderFilter) (model.OrderStats, error) {
	where, args := orderFilterClause(filter)
	query := `SELECT COUNT(*), COALESCE(SUM(price * quantity), 0)::text FROM orders` + where

	var (
		stats   model.OrderStats
		revenue string
	)
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&stats.Count, &revenue); err != nil {
		return model.OrderStats{}, err
	}
	amount, err := decimal.NewFromString(revenue)
	if err != nil {
		return model.OrderStats{}, fmt.Errorf("parse revenue: %w", err)
	}
	stats.Revenue = amount
	return stats, nil
}

func orderFilterClause(filter model.OrderFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if len(filter.Statuses) > 0 {
		values := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			values[i] = string(s)
		}
		conds = append(conds, "status = ANY("+next(values)+")")
	}
	if filter.Status != "" {
		conds = append(conds, "LOWER(status) = LOWER("+next(filter.Status)+")")
	}
	if filter.Email != "" {
		conds = append(conds, "LOWER(email) = LOWER("+next(filter.Email)+")")
	}
	if filter.From != nil {
		conds = append(conds, "created_at >= "+next(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "created_at < "+next(*filter.To))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		price string
	)
	err := row.Scan(&o.ID, &o.Item, &price, &o.Quantity, &o.Type, &o.ScheduledFor,
		&o.Email, &o.Mobile, &o.Address, &o.Delivery, &o.Status,
		&o.CancellationReason, &o.DeviceToken, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if o.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &o, nil
}
