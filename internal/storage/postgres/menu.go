package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

type menuRepository struct {
	storage *Storage
}

const menuItemSelect = `SELECT i.id, COALESCE(i.category_id, 0), COALESCE(c.name, ''), i.name, i.description, i.price::text, i.image_url, i.featured
                        FROM menu_items i LEFT JOIN menu_categories c ON c.id = i.category_id`

func (r *menuRepository) CreateCategory(ctx context.Context, category model.MenuCategory) (*model.MenuCategory, error) {
	const query = `INSERT INTO menu_categories (name, description, added_by) VALUES ($1, $2, $3) RETURNING id`
	c := category
	if err := r.storage.pool.QueryRow(ctx, query, c.Name, c.Description, c.AddedBy).Scan(&c.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *menuRepository) ListCategories(ctx context.Context) ([]model.MenuCategory, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT id, name, description, added_by FROM menu_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuCategory
	for rows.Next() {
		var c model.MenuCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.AddedBy); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	const query = `INSERT INTO menu_items (category_id, name, description, price, image_url, featured)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	it := item
	err := r.storage.pool.QueryRow(ctx, query, nullableID(it.CategoryID), it.Name, it.Description, it.Price, it.ImageURL, it.Featured).Scan(&it.ID)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *menuRepository) UpdateItem(ctx context.Context, item model.MenuItem) error {
	const query = `UPDATE menu_items SET category_id=$1, name=$2, description=$3, price=$4, image_url=$5, featured=$6 WHERE id=$7`
	tag, err := r.storage.pool.Exec(ctx, query, nullableID(item.CategoryID), item.Name, item.Description, item.Price, item.ImageURL, item.Featured, item.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) DeleteItem(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *menuRepository) GetItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	row := r.storage.pool.QueryRow(ctx, menuItemSelect+` WHERE i.id=$1`, id)
	it, err := scanMenuItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *menuRepository) ListItems(ctx context.Context, featuredOnly bool, limit int) ([]model.MenuItem, error) {
	query := menuItemSelect
	var args []any
	if featuredOnly {
		query += ` WHERE i.featured`
	}
	query += ` ORDER BY c.name NULLS LAST, i.name`
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	return r.queryItems(ctx, query, args...)
}

// SearchItems matches name or description by case-insensitive substring.
func (r *menuRepository) SearchItems(ctx context.Context, query string, limit int) ([]model.MenuItem, error) {
	sql := menuItemSelect + ` WHERE i.name ILIKE '%' || $1 || '%' OR i.description ILIKE '%' || $1 || '%' ORDER BY i.name LIMIT $2`
	return r.queryItems(ctx, sql, query, limit)
}

func (r *menuRepository) ListSpecials(ctx context.Context, limit int) ([]model.SpecialMenu, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT id, title, subtitle, price::text, image_url FROM special_menus ORDER BY id LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SpecialMenu
	for rows.Next() {
		var (
			s     model.SpecialMenu
			price string
		)
		if err := rows.Scan(&s.ID, &s.Title, &s.Subtitle, &price, &s.ImageURL); err != nil {
			return nil, err
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) queryItems(ctx context.Context, query string, args ...any) ([]model.MenuItem, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MenuItem
	for rows.Next() {
		it, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var (
		it    model.MenuItem
		price string
	)
	if err := row.Scan(&it.ID, &it.CategoryID, &it.Category, &it.Name, &it.Description, &price, &it.ImageURL, &it.Featured); err != nil {
		return nil, err
	}
	var err error
	if it.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	return &it, nil
}

func nullableID(id int64) *int64 {
	if id <= 0 {
		return nil
	}
	return &id
}
