package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/sushibar/internal/domain/errors"
	"github.com/polkiloo/sushibar/internal/domain/model"
	testhelpers "github.com/polkiloo/sushibar/internal/test"
)

func seededMenu() *testhelpers.MenuRepositoryStub {
	repo := testhelpers.NewMenuRepositoryStub(
		model.MenuItem{ID: 1, Name: "Salmon Nigiri", Price: decimal.RequireFromString("6"), Featured: true},
		model.MenuItem{ID: 2, Name: "Tuna Maki", Price: decimal.RequireFromString("8")},
		model.MenuItem{ID: 3, Name: "Salmon Sashimi", Price: decimal.RequireFromString("14")},
	)
	repo.Categories = []model.MenuCategory{{ID: 1, Name: "Nigiri"}}
	repo.Specials = []model.SpecialMenu{{ID: 1, Title: "Omakase"}}
	return repo
}

func TestMenuBrowseAndFeatured(t *testing.T) {
	uc := NewMenuUseCase(seededMenu())
	ctx := context.Background()

	view, err := uc.Browse(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Categories) != 1 || len(view.Items) != 3 || len(view.Specials) != 1 {
		t.Fatalf("unexpected view %+v", view)
	}

	featured, err := uc.Featured(ctx)
	if err != nil || len(featured) != 1 || featured[0].ID != 1 {
		t.Fatalf("unexpected featured %v err=%v", featured, err)
	}
}

func TestMenuSearch(t *testing.T) {
	repo := seededMenu()
	uc := NewMenuUseCase(repo)

	hits, err := uc.Search(context.Background(), "  salmon ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hits) != 2 || hits[0].URL != "/menu#item-1" || hits[1].URL != "/menu#item-3" {
		t.Fatalf("unexpected hits %+v", hits)
	}
	if repo.SearchQueries[0] != "salmon" {
		t.Fatalf("expected trimmed query, got %q", repo.SearchQueries[0])
	}

	hits, err = uc.Search(context.Background(), " ")
	if err != nil || len(hits) != 0 || len(repo.SearchQueries) != 1 {
		t.Fatalf("blank query must not hit storage: %v %v", hits, err)
	}
}

func TestMenuCreateCategory(t *testing.T) {
	repo := seededMenu()
	uc := NewMenuUseCase(repo)
	ctx := context.Background()

	c, err := uc.CreateCategory(ctx, testhelpers.Staff(), CategoryInput{Name: " Rolls ", AddedBy: "chef"})
	if err != nil || c.Name != "Rolls" || c.AddedBy != "chef" {
		t.Fatalf("unexpected category %+v err=%v", c, err)
	}

	_, err = uc.CreateCategory(ctx, testhelpers.Staff(), CategoryInput{Name: "Rolls"})
	var vErr *domainErrors.ValidationError
	if !errors.As(err, &vErr) || vErr.Reason != "Name and added_by are required" {
		t.Fatalf("expected missing added_by error, got %v", err)
	}
	if _, err := uc.CreateCategory(ctx, testhelpers.Customer("a@x.io"), CategoryInput{Name: "x", AddedBy: "y"}); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestMenuItemLifecycle(t *testing.T) {
	repo := seededMenu()
	uc := NewMenuUseCase(repo)
	ctx := context.Background()
	staff := testhelpers.Staff()

	item, err := uc.CreateItem(ctx, staff, MenuItemInput{CategoryID: 1, Name: "Ebi Tempura", Price: "12.50", Featured: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 4 || !item.Price.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("unexpected item %+v", item)
	}

	updated, err := uc.UpdateItem(ctx, staff, item.ID, MenuItemInput{CategoryID: 1, Name: "Ebi Tempura Roll", Price: "13"})
	if err != nil || updated.Name != "Ebi Tempura Roll" || updated.Featured {
		t.Fatalf("unexpected update %+v err=%v", updated, err)
	}
	if _, err := uc.UpdateItem(ctx, staff, 99, MenuItemInput{Name: "x", Price: "1"}); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := uc.DeleteItem(ctx, staff, item.ID); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if err := uc.DeleteItem(ctx, nil, 1); !errors.Is(err, domainErrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestMenuItemValidation(t *testing.T) {
	uc := NewMenuUseCase(seededMenu())
	cases := map[string]MenuItemInput{
		"missing name":   {Price: "1"},
		"missing price":  {Name: "Roll"},
		"text price":     {Name: "Roll", Price: "cheap"},
		"negative price": {Name: "Roll", Price: "-3"},
		"huge price":     {Name: "Roll", Price: "100000000"},
		"sub-cent price": {Name: "Roll", Price: "1.999"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := uc.CreateItem(context.Background(), testhelpers.Staff(), in); !errors.Is(err, domainErrors.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
