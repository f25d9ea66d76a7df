package overview

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// CacheNamespace is the Redis namespace of cached stats.
const CacheNamespace = "overview"

// Service loads dashboard stats through a versioned cache.
type Service struct {
	api   xano.API
	cache *cache.Versioned
}

// NewService constructs the overview service. A nil cache always hits the API.
func NewService(api xano.API, c *cache.Versioned) *Service {
	return &Service{api: api, cache: c}
}

// Stats returns the figures for f, cached per restaurant, branch and range.
func (s *Service) Stats(ctx context.Context, f Filter) (*Stats, error) {
	branch := "all"
	if f.BranchID != nil {
		branch = strconv.FormatInt(*f.BranchID, 10)
	}
	from := f.Range.From.Format(shared.DateLayout)
	to := f.Range.To.Format(shared.DateLayout)
	key, err := s.cache.BuildKey(ctx, "stats", strconv.FormatInt(f.RestaurantID, 10), branch, from, to)
	if err != nil {
		return nil, fmt.Errorf("overview: cache key: %w", err)
	}

	var out Stats
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		query := url.Values{}
		f.Range.Apply(query)
		if f.BranchID != nil {
			query.Set("branch_id", branch)
		}
		var stats Stats
		if err := s.api.Get(ctx, "/dashboard/stats", xano.TokenFromContext(ctx), query, &stats); err != nil {
			return nil, err
		}
		return stats, nil
	})
	if err != nil {
		return nil, fmt.Errorf("overview: stats: %w", err)
	}
	return &out, nil
}

// Invalidate drops every cached stats entry.
func (s *Service) Invalidate(ctx context.Context) error {
	_, err := s.cache.Bump(ctx)
	return err
}
