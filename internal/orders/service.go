package orders

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// DefaultPerPage is the transactions table page size.
const DefaultPerPage = 25

// Invalidator is told when an order write changes dashboard figures.
type Invalidator interface {
	Bump(ctx context.Context) (int64, error)
}

// Service wraps the order and rider endpoints.
type Service struct {
	api   xano.API
	stats Invalidator
}

// NewService constructs the order service. stats may be nil.
func NewService(api xano.API, stats Invalidator) *Service {
	return &Service{api: api, stats: stats}
}

func orderPath(id int64) string { return fmt.Sprintf("/orders/%d", id) }

// List returns one page of orders matching the filter.
func (s *Service) List(ctx context.Context, f Filter) (*Listing, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	query := url.Values{}
	f.Range.Apply(query)
	query.Set("page", strconv.Itoa(f.Page))
	query.Set("per_page", strconv.Itoa(f.PerPage))
	if f.BranchID != nil {
		query.Set("branch_id", strconv.FormatInt(*f.BranchID, 10))
	}
	if f.Status != "" {
		query.Set("status", f.Status)
	}
	var page xano.Page[Order]
	if err := s.api.Get(ctx, "/orders", xano.TokenFromContext(ctx), query, &page); err != nil {
		return nil, fmt.Errorf("orders: list: %w", err)
	}
	return &Listing{Orders: page.Items, Pagination: shared.NewPagination(f.Page, f.PerPage, page.ItemsTotal)}, nil
}

// Recent returns the newest orders for the overview screen.
func (s *Service) Recent(ctx context.Context, branch *int64, limit int) ([]Order, error) {
	query := url.Values{"per_page": {strconv.Itoa(limit)}, "page": {"1"}, "sort": {"created_at:desc"}}
	if branch != nil {
		query.Set("branch_id", strconv.FormatInt(*branch, 10))
	}
	var page xano.Page[Order]
	if err := s.api.Get(ctx, "/orders", xano.TokenFromContext(ctx), query, &page); err != nil {
		return nil, fmt.Errorf("orders: recent: %w", err)
	}
	return page.Items, nil
}

// Get loads one order with its items.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	var out Order
	if err := s.api.Get(ctx, orderPath(id), xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("orders: get %d: %w", id, err)
	}
	return &out, nil
}

// UpdateStatus moves an order to status. Only the value is checked here.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, shared.FieldErrors{"status": "Choose a valid status"}
	}
	var out Order
	if err := s.api.Patch(ctx, orderPath(id)+"/status", xano.TokenFromContext(ctx), map[string]string{"status": status}, &out); err != nil {
		return nil, fmt.Errorf("orders: update status %d: %w", id, err)
	}
	s.invalidate(ctx)
	return &out, nil
}

// AssignRider hands a delivery order to a rider.
func (s *Service) AssignRider(ctx context.Context, orderID, riderID int64) (*Order, error) {
	if riderID <= 0 {
		return nil, shared.FieldErrors{"rider_id": "Choose a rider"}
	}
	var out Order
	if err := s.api.Patch(ctx, orderPath(orderID)+"/rider", xano.TokenFromContext(ctx), map[string]int64{"rider_id": riderID}, &out); err != nil {
		return nil, fmt.Errorf("orders: assign rider %d: %w", orderID, err)
	}
	s.invalidate(ctx)
	return &out, nil
}

// ListRiders returns riders, limited to a branch when set.
func (s *Service) ListRiders(ctx context.Context, branch *int64) ([]Rider, error) {
	query := url.Values{}
	if branch != nil {
		query.Set("branch_id", strconv.FormatInt(*branch, 10))
	}
	var out []Rider
	if err := s.api.Get(ctx, "/riders", xano.TokenFromContext(ctx), query, &out); err != nil {
		return nil, fmt.Errorf("orders: list riders: %w", err)
	}
	return out, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.stats == nil {
		return
	}
	_, _ = s.stats.Bump(ctx)
}
