package model

import "github.com/shopspring/decimal"

// MenuCategory groups menu items.
type MenuCategory struct {
	ID          int64
	Name        string
	Description string
	AddedBy     string
}

// MenuItem is a dish offered on the menu.
type MenuItem struct {
	ID          int64
	CategoryID  int64
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Featured    bool
}

// SpecialMenu is a promoted offer shown on the home page.
type SpecialMenu struct {
	ID       int64
	Title    string
	Subtitle string
	Price    decimal.Decimal
	ImageURL string
}
