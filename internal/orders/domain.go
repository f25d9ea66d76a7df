package orders

import (
	"slices"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Order statuses understood by the API.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusPreparing  = "preparing"
	StatusReady      = "ready"
	StatusDispatched = "dispatched"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []string{
	StatusPending, StatusAccepted, StatusPreparing, StatusReady,
	StatusDispatched, StatusDelivered, StatusCancelled,
}

// ValidStatus reports whether s is a known status. Transition rules are the API's.
func ValidStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

// Order is a customer order as listed on the transactions screen.
type Order struct {
	ID            int64       `json:"id"`
	OrderNumber   string      `json:"order_number"`
	BranchID      int64       `json:"branch_id"`
	BranchName    string      `json:"branch_name"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Type          string      `json:"type"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"delivery_fee"`
	Total         float64     `json:"total"`
	RiderID       *int64      `json:"rider_id"`
	RiderName     string      `json:"rider_name"`
	Notes         string      `json:"notes"`
	CreatedAt     xano.Time   `json:"created_at"`
}

// IsDelivery reports whether a rider can be assigned.
func (o Order) IsDelivery() bool {
	return o.Type == "delivery"
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID        int64    `json:"id"`
	FoodID    int64    `json:"food_id"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitPrice float64  `json:"unit_price"`
	Total     float64  `json:"total"`
	Extras    []string `json:"extras"`
}

// Rider delivers orders for a branch.
type Rider struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	BranchID    *int64 `json:"branch_id"`
	IsAvailable bool   `json:"is_available"`
}

// Filter narrows the order list.
type Filter struct {
	Range    shared.DateRange
	BranchID *int64
	Status   string
	Page     int
	PerPage  int
}

// Listing is one page of orders.
type Listing struct {
	Orders     []Order
	Pagination shared.Pagination
}
