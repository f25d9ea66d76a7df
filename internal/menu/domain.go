package menu

import (
	"strings"

	"github.com/platehub/backoffice/internal/xano"
)

// Category groups foods on the menu.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	FoodCount   int       `json:"food_count"`
	CreatedAt   xano.Time `json:"created_at"`
}

// CategoryForm is the editable part of a category.
type CategoryForm struct {
	Name        string `form:"name" json:"name" validate:"notblank"`
	Description string `form:"description" json:"description"`
	SortOrder   int    `form:"sort_order" json:"sort_order" validate:"gte=0"`
}

// Food is a menu item.
type Food struct {
	ID           int64         `json:"id"`
	CategoryID   int64         `json:"category_id"`
	CategoryName string        `json:"category_name"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Price        float64       `json:"price"`
	ImageURL     string        `json:"image_url"`
	IsAvailable  bool          `json:"is_available"`
	ExtrasGroups []ExtrasGroup `json:"extras_groups"`
	CreatedAt    xano.Time     `json:"created_at"`
}

// FoodForm is submitted by the add and edit item screens.
type FoodForm struct {
	Name        string  `form:"name" validate:"notblank"`
	Description string  `form:"description"`
	CategoryID  int64   `form:"category_id" validate:"gt=0"`
	Price       float64 `form:"price" validate:"gte=0"`
	PriceRaw    string  `form:"-"`
	IsAvailable bool    `form:"is_available"`
}

// FoodFormFrom prefills the edit form.
func FoodFormFrom(f Food) FoodForm {
	return FoodForm{
		Name:        f.Name,
		Description: f.Description,
		CategoryID:  f.CategoryID,
		Price:       f.Price,
		IsAvailable: f.IsAvailable,
	}
}

// ExtrasGroup is a named set of add-ons attached to a food.
type ExtrasGroup struct {
	ID     int64   `json:"id,omitempty"`
	FoodID int64   `json:"food_id,omitempty"`
	Name   string  `json:"name" validate:"notblank"`
	Min    int     `json:"min" validate:"gte=0"`
	Max    int     `json:"max" validate:"gtefield=Min"`
	Extras []Extra `json:"extras" validate:"dive"`
}

// Extra is one selectable add-on.
type Extra struct {
	ID    int64   `json:"id,omitempty"`
	Name  string  `json:"name" validate:"notblank"`
	Price float64 `json:"price" validate:"gte=0"`
}

// FoodFilter narrows the inventory grid.
type FoodFilter struct {
	CategoryID int64
	Search     string
}

// Matches reports whether a food passes the search term. The API filters by
// category; the search term is applied here as the inventory page did.
func (f FoodFilter) Matches(food Food) bool {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(food.Name), term) ||
		strings.Contains(strings.ToLower(food.Description), term)
}
