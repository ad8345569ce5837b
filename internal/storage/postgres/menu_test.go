package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
)

var menuItemCols = []string{"id", "category_id", "category", "name", "description", "price", "image_url", "featured"}

func TestMenuRepositoryCategories(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &menuRepository{storage: storage}

	mock.ExpectQuery("INSERT INTO menu_categories").WithArgs("Rolls", "", "chef").
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(3)))
	c, err := repo.CreateCategory(context.Background(), model.MenuCategory{Name: "Rolls", AddedBy: "chef"})
	if err != nil || c.ID != 3 {
		t.Fatalf("unexpected result: %+v err=%v", c, err)
	}

	mock.ExpectQuery("INSERT INTO menu_categories").WillReturnError(&pgconn.PgError{Code: "23505"})
	if _, err := repo.CreateCategory(context.Background(), model.MenuCategory{Name: "Rolls", AddedBy: "chef"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	mock.ExpectQuery("FROM menu_categories ORDER BY name").WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "name", "description", "added_by"}).
			AddRow(int64(1), "Nigiri", "", "chef").
			AddRow(int64(3), "Rolls", "", "chef"))
	list, err := repo.ListCategories(context.Background())
	if err != nil || len(list) != 2 {
		t.Fatalf("unexpected categories: %+v err=%v", list, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMenuRepositoryItems(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &menuRepository{storage: storage}

	item := model.MenuItem{CategoryID: 1, Name: "Salmon Nigiri", Price: decimal.RequireFromString("6.50"), Featured: true}
	categoryID := int64(1)
	mock.ExpectQuery("INSERT INTO menu_items").
		WithArgs(&categoryID, "Salmon Nigiri", "", pgxmockv3.AnyArg(), "", true).
		WillReturnRows(pgxmockv3.NewRows([]string{"id"}).AddRow(int64(11)))
	created, err := repo.CreateItem(context.Background(), item)
	if err != nil || created.ID != 11 {
		t.Fatalf("unexpected result: %+v err=%v", created, err)
	}

	created.Name = "Salmon Nigiri (2 pcs)"
	mock.ExpectExec("UPDATE menu_items SET").WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.UpdateItem(context.Background(), *created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE menu_items SET").WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.UpdateItem(context.Background(), model.MenuItem{ID: 99}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("DELETE FROM menu_items WHERE id=").WithArgs(int64(11)).WillReturnResult(pgxmockv3.NewResult("DELETE", 1))
	if err := repo.DeleteItem(context.Background(), 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM menu_items WHERE id=").WithArgs(int64(12)).WillReturnResult(pgxmockv3.NewResult("DELETE", 0))
	if err := repo.DeleteItem(context.Background(), 12); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("WHERE i.id=").WithArgs(int64(11)).WillReturnRows(
		pgxmockv3.NewRows(menuItemCols).AddRow(int64(11), int64(1), "Nigiri", "Salmon Nigiri", "", "6.50", "", true))
	got, err := repo.GetItem(context.Background(), 11)
	if err != nil || got.Category != "Nigiri" || !got.Price.Equal(decimal.RequireFromString("6.5")) {
		t.Fatalf("unexpected item: %+v err=%v", got, err)
	}

	mock.ExpectQuery("WHERE i.id=").WithArgs(int64(12)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetItem(context.Background(), 12); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMenuRepositoryListAndSearch(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &menuRepository{storage: storage}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.featured ORDER BY c.name NULLS LAST, i.name LIMIT $1")).WithArgs(3).
		WillReturnRows(pgxmockv3.NewRows(menuItemCols).AddRow(int64(11), int64(1), "Nigiri", "Salmon Nigiri", "", "6.50", "", true))
	featured, err := repo.ListItems(context.Background(), true, 3)
	if err != nil || len(featured) != 1 {
		t.Fatalf("unexpected featured: %+v err=%v", featured, err)
	}

	mock.ExpectQuery("ILIKE").WithArgs("salmon", 20).
		WillReturnRows(pgxmockv3.NewRows(menuItemCols).
			AddRow(int64(11), int64(1), "Nigiri", "Salmon Nigiri", "", "6.50", "", true).
			AddRow(int64(12), int64(0), "", "Salmon Roll", "", "9.00", "", false))
	found, err := repo.SearchItems(context.Background(), "salmon", 20)
	if err != nil || len(found) != 2 || found[1].CategoryID != 0 {
		t.Fatalf("unexpected search result: %+v err=%v", found, err)
	}

	mock.ExpectQuery("FROM special_menus").WithArgs(4).
		WillReturnRows(pgxmockv3.NewRows([]string{"id", "title", "subtitle", "price", "image_url"}).
			AddRow(int64(1), "Omakase", "Chef's choice", "45.00", "/media/omakase.jpg"))
	specials, err := repo.ListSpecials(context.Background(), 4)
	if err != nil || len(specials) != 1 || !specials[0].Price.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("unexpected specials: %+v err=%v", specials, err)
	}

	mock.ExpectQuery("ILIKE").WillReturnError(errors.New("boom"))
	if _, err := repo.SearchItems(context.Background(), "x", 20); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestMenuRepositoryRowsError(t *testing.T) {
	repo := &menuRepository{storage: newRowsErrorStorage()}
	if _, err := repo.ListItems(context.Background(), false, 0); err == nil {
		t.Fatal("expected rows error")
	}
	if _, err := repo.ListCategories(context.Background()); err == nil {
		t.Fatal("expected rows error")
	}
	if _, err := repo.ListSpecials(context.Background(), 4); err == nil {
		t.Fatal("expected rows error")
	}
}

func TestNullableID(t *testing.T) {
	if nullableID(0) != nil {
		t.Fatal("expected nil for zero id")
	}
	if v := nullableID(5); v == nil || *v != 5 {
		t.Fatalf("unexpected value %v", v)
	}
}
