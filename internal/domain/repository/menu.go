package repository

import (
	"context"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

// MenuRepository manages categories, items and specials.
type MenuRepository interface {
	CreateCategory(ctx context.Context, category model.MenuCategory) (*model.MenuCategory, error)
	ListCategories(ctx context.Context) ([]model.MenuCategory, error)
	CreateItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error)
	UpdateItem(ctx context.Context, item model.MenuItem) error
	DeleteItem(ctx context.Context, id int64) error
	GetItem(ctx context.Context, id int64) (*model.MenuItem, error)
	ListItems(ctx context.Context, featuredOnly bool, limit int) ([]model.MenuItem, error)
	SearchItems(ctx context.Context, query string, limit int) ([]model.MenuItem, error)
	ListSpecials(ctx context.Context, limit int) ([]model.SpecialMenu, error)
}
