package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/domain/repository"
)

const (
	searchLimit   = 10
	featuredLimit = 6
	specialsLimit = 6
)

// MenuView is the public menu page content.
type MenuView struct {
	Categories []model.MenuCategory
	Items      []model.MenuItem
	Specials   []model.SpecialMenu
}

// SearchHit is a menu search match pointing at the item anchor on the menu page.
type SearchHit struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	URL   string
}

// MenuUseCase serves the public menu and staff menu management.
type MenuUseCase struct {
	menu repository.MenuRepository
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository) *MenuUseCase {
	return &MenuUseCase{menu: menu}
}

// Browse returns categories, all items and specials.
func (u *MenuUseCase) Browse(ctx context.Context) (MenuView, error) {
	categories, err := u.menu.ListCategories(ctx)
	if err != nil {
		return MenuView{}, err
	}
	items, err := u.menu.ListItems(ctx, false, 0)
	if err != nil {
		return MenuView{}, err
	}
	specials, err := u.menu.ListSpecials(ctx, specialsLimit)
	if err != nil {
		return MenuView{}, err
	}
	return MenuView{Categories: categories, Items: items, Specials: specials}, nil
}

// Featured returns items promoted on the home page.
func (u *MenuUseCase) Featured(ctx context.Context) ([]model.MenuItem, error) {
	return u.menu.ListItems(ctx, true, featuredLimit)
}

// Search matches item names by substring; blank query yields no hits.
func (u *MenuUseCase) Search(ctx context.Context, query string) ([]SearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchHit{}, nil
	}
	items, err := u.menu.SearchItems(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	hits := make([]SearchHit, 0, len(items))
	for _, it := range items {
		hits = append(hits, SearchHit{
			ID:    it.ID,
			Name:  it.Name,
			Price: it.Price,
			URL:   fmt.Sprintf("/menu#item-%d", it.ID),
		})
	}
	return hits, nil
}

// CreateCategory adds a menu category.
func (u *MenuUseCase) CreateCategory(ctx context.Context, principal *model.Principal, in CategoryInput) (*model.MenuCategory, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.AddedBy = strings.TrimSpace(in.AddedBy)
	if in.Name == "" || in.AddedBy == "" {
		return nil, domainErrors.NewValidationError("Name and added_by are required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return u.menu.CreateCategory(ctx, model.MenuCategory{
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		AddedBy:     in.AddedBy,
	})
}

// CreateItem adds a dish to the menu.
func (u *MenuUseCase) CreateItem(ctx context.Context, principal *model.Principal, in MenuItemInput) (*model.MenuItem, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	item, err := menuItemFromInput(in)
	if err != nil {
		return nil, err
	}
	return u.menu.CreateItem(ctx, item)
}

// UpdateItem replaces an existing dish.
func (u *MenuUseCase) UpdateItem(ctx context.Context, principal *model.Principal, id int64, in MenuItemInput) (*model.MenuItem, error) {
	if err := requireStaff(principal); err != nil {
		return nil, err
	}
	item, err := menuItemFromInput(in)
	if err != nil {
		return nil, err
	}
	item.ID = id
	if err := u.menu.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return u.menu.GetItem(ctx, id)
}

// DeleteItem removes a dish.
func (u *MenuUseCase) DeleteItem(ctx context.Context, principal *model.Principal, id int64) error {
	if err := requireStaff(principal); err != nil {
		return err
	}
	return u.menu.DeleteItem(ctx, id)
}

func menuItemFromInput(in MenuItemInput) (model.MenuItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = strings.TrimSpace(in.Price)
	if err := validateStruct(in); err != nil {
		return model.MenuItem{}, err
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.IsNegative() {
		return model.MenuItem{}, domainErrors.NewValidationError("price must be a non-negative number")
	}
	if price.GreaterThan(maxPrice) || !price.Equal(price.Round(priceScale)) {
		return model.MenuItem{}, domainErrors.NewValidationError("price must be at most " + maxPrice.StringFixed(priceScale) + " with 2 decimal places")
	}
	return model.MenuItem{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Featured:    in.Featured,
	}, nil
}
