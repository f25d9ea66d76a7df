package audit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Page sizes and the export ceiling.
const (
	DefaultPerPage = 20
	MaxPerPage     = 50
	exportPerPage  = 100
	maxExportPages = 20
)

// Service reads the audit log.
type Service struct {
	api xano.API
}

// NewService constructs the audit service.
func NewService(api xano.API) *Service {
	return &Service{api: api}
}

func (s *Service) page(ctx context.Context, f Filters, page, perPage int) (xano.Page[Entry], error) {
	query := url.Values{}
	f.Apply(query)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	var out xano.Page[Entry]
	err := s.api.Get(ctx, "/audit_logs", xano.TokenFromContext(ctx), query, &out)
	return out, err
}

// Timeline returns one page of entries.
func (s *Service) Timeline(ctx context.Context, f Filters) (*Result, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PerPage < 1 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
	page, err := s.page(ctx, f, f.Page, f.PerPage)
	if err != nil {
		return nil, fmt.Errorf("audit: timeline: %w", err)
	}
	return &Result{Entries: page.Items, Pagination: shared.NewPagination(f.Page, f.PerPage, page.ItemsTotal)}, nil
}

// Export walks every page matching f, up to a fixed ceiling.
func (s *Service) Export(ctx context.Context, f Filters) ([]Entry, error) {
	var out []Entry
	for n := 1; n <= maxExportPages; n++ {
		page, err := s.page(ctx, f, n, exportPerPage)
		if err != nil {
			return nil, fmt.Errorf("audit: export page %d: %w", n, err)
		}
		out = append(out, page.Items...)
		if len(page.Items) < exportPerPage || (page.PageTotal > 0 && n >= page.PageTotal) {
			break
		}
	}
	return out, nil
}
