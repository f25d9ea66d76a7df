package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/platehub/backoffice/internal/xano"
)

// Service calls the report endpoints.
type Service struct {
	api xano.API
}

// NewService constructs the report service.
func NewService(api xano.API) *Service {
	return &Service{api: api}
}

type response struct {
	Currency string          `json:"currency"`
	Rows     json.RawMessage `json:"rows"`
}

// Generate runs the report described by f.
func (s *Service) Generate(ctx context.Context, f Filter) (*Report, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	query := url.Values{}
	f.Range.Apply(query)
	if f.BranchID != nil {
		query.Set("branch_id", strconv.FormatInt(*f.BranchID, 10))
	}
	var resp response
	if err := s.api.Get(ctx, "/reports/"+f.Type, xano.TokenFromContext(ctx), query, &resp); err != nil {
		return nil, fmt.Errorf("reports: generate %s: %w", f.Type, err)
	}
	raw := resp.Rows
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("[]")
	}
	columns, rows, totals, err := build(f.Type, raw)
	if err != nil {
		return nil, fmt.Errorf("reports: decode %s: %w", f.Type, err)
	}
	return &Report{
		Type:     f.Type,
		Title:    title(f.Type),
		Range:    f.Range,
		Currency: resp.Currency,
		Columns:  columns,
		Rows:     rows,
		Totals:   totals,
	}, nil
}
