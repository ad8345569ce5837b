package dto

import (
	"github.com/polkiloo/sushibar/internal/domain/model"
	"github.com/polkiloo/sushibar/internal/usecase"
)

// CategoryRequest creates a menu category.
type CategoryRequest struct {
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	AddedBy     string `json:"added_by" form:"added_by"`
}

// MenuItemRequest creates or replaces a menu item; price stays text until validated.
type MenuItemRequest struct {
	CategoryID  int64  `json:"category" form:"category"`
	Name        string `json:"name" form:"name"`
	Description string `json:"description" form:"description"`
	Price       string `json:"price" form:"price"`
	ImageURL    string `json:"image_url" form:"image_url"`
	Featured    bool   `json:"featured" form:"featured"`
}

// Input converts request to use case input.
func (r MenuItemRequest) Input() usecase.MenuItemInput {
	return usecase.MenuItemInput{
		CategoryID:  r.CategoryID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Featured:    r.Featured,
	}
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AddedBy     string `json:"added_by,omitempty"`
}

type MenuItemResponse struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id,omitempty"`
	Category    string `json:"category,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Featured    bool   `json:"featured"`
}

type SpecialResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Price    string `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

// MenuResponse is the full public menu.
type MenuResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Items      []MenuItemResponse `json:"items"`
	Specials   []SpecialResponse  `json:"specials"`
}

// SearchResult is one menu search hit.
type SearchResult struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	URL   string `json:"url"`
}

func NewCategoryResponse(c model.MenuCategory) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, AddedBy: c.AddedBy}
}

func NewMenuItemResponse(it model.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          it.ID,
		CategoryID:  it.CategoryID,
		Category:    it.Category,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price.StringFixed(2),
		ImageURL:    it.ImageURL,
		Featured:    it.Featured,
	}
}

func NewMenuItemsResponse(items []model.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, NewMenuItemResponse(it))
	}
	return out
}

// NewMenuResponse maps the menu view.
func NewMenuResponse(v usecase.MenuView) MenuResponse {
	resp := MenuResponse{
		Categories: make([]CategoryResponse, 0, len(v.Categories)),
		Items:      NewMenuItemsResponse(v.Items),
		Specials:   make([]SpecialResponse, 0, len(v.Specials)),
	}
	for _, c := range v.Categories {
		resp.Categories = append(resp.Categories, NewCategoryResponse(c))
	}
	for _, s := range v.Specials {
		resp.Specials = append(resp.Specials, SpecialResponse{
			ID:       s.ID,
			Title:    s.Title,
			Subtitle: s.Subtitle,
			Price:    s.Price.StringFixed(2),
			ImageURL: s.ImageURL,
		})
	}
	return resp
}

// NewSearchResults maps search hits.
func NewSearchResults(hits []usecase.SearchHit) []SearchResult {
	out := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, SearchResult{ID: h.ID, Name: h.Name, Price: h.Price.StringFixed(2), URL: h.URL})
	}
	return out
}
