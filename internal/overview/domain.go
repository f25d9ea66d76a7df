// Package overview serves the landing dashboard: headline totals, the daily
// revenue trend and the latest orders.
package overview

import (
	"github.com/platehub/backoffice/internal/shared"
)

// Totals are the headline figures for a date range.
type Totals struct {
	Revenue       float64 `json:"revenue"`
	Orders        int64   `json:"orders"`
	AverageTicket float64 `json:"average_ticket"`
	Customers     int64   `json:"customers"`
	Cancelled     int64   `json:"cancelled"`
}

// Day is one point of the daily series.
type Day struct {
	Date      string  `json:"date"`
	Revenue   float64 `json:"revenue"`
	Orders    int64   `json:"orders"`
	Cancelled int64   `json:"cancelled"`
}

// TopItem is a best selling food.
type TopItem struct {
	FoodID   int64   `json:"food_id"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// Stats is the payload of the dashboard stats endpoint.
type Stats struct {
	Currency string    `json:"currency"`
	Totals   Totals    `json:"totals"`
	Daily    []Day     `json:"daily"`
	TopItems []TopItem `json:"top_items"`
}

// Filter selects the stats window.
type Filter struct {
	RestaurantID int64
	BranchID     *int64
	Range        shared.DateRange
}
