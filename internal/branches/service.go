package branches

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/xano"
)

// Service wraps the /branch endpoints.
type Service struct {
	api   xano.API
	cache *cache.Versioned
}

// NewService constructs the branch service. options may be nil.
func NewService(api xano.API, options *cache.Versioned) *Service {
	return &Service{api: api, cache: options}
}

func branchPath(id int64) string {
	return fmt.Sprintf("/branch/%d", id)
}

// List returns every branch of the restaurant.
func (s *Service) List(ctx context.Context) ([]Branch, error) {
	var out []Branch
	if err := s.api.Get(ctx, "/branch", xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("branches: list: %w", err)
	}
	return out, nil
}

// Options returns the branch filter entries, cached per restaurant.
func (s *Service) Options(ctx context.Context, restaurantID int64) ([]Option, error) {
	key, err := s.cache.BuildKey(ctx, "options", strconv.FormatInt(restaurantID, 10))
	if err != nil {
		return nil, err
	}
	var out []Option
	err = s.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (any, error) {
		list, err := s.List(ctx)
		if err != nil {
			return nil, err
		}
		opts := make([]Option, 0, len(list))
		for _, b := range list {
			if b.IsActive {
				opts = append(opts, Option{ID: b.ID, Name: b.Name})
			}
		}
		return opts, nil
	})
	return out, err
}

// Get loads a single branch.
func (s *Service) Get(ctx context.Context, id int64) (*Branch, error) {
	var out Branch
	if err := s.api.Get(ctx, branchPath(id), xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("branches: get %d: %w", id, err)
	}
	return &out, nil
}

// Create validates and stores a new branch.
func (s *Service) Create(ctx context.Context, form BranchForm) (*Branch, error) {
	form = trim(form)
	if err := Validate(form); err != nil {
		return nil, err
	}
	var out Branch
	if err := s.api.Post(ctx, "/branch", xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("branches: create: %w", err)
	}
	s.invalidate(ctx)
	return &out, nil
}

// Update validates and saves a branch.
func (s *Service) Update(ctx context.Context, id int64, form BranchForm) (*Branch, error) {
	form = trim(form)
	if err := Validate(form); err != nil {
		return nil, err
	}
	var out Branch
	if err := s.api.Patch(ctx, branchPath(id), xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("branches: update %d: %w", id, err)
	}
	s.invalidate(ctx)
	return &out, nil
}

// Delete removes a branch.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, branchPath(id), xano.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("branches: delete %d: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	// A failed bump only delays the filter refresh until the TTL expires.
	_, _ = s.cache.Bump(ctx)
}

func trim(form BranchForm) BranchForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Address = strings.TrimSpace(form.Address)
	form.Phone = strings.TrimSpace(form.Phone)
	for i := range form.OpeningHours {
		form.OpeningHours[i].Open = strings.TrimSpace(form.OpeningHours[i].Open)
		form.OpeningHours[i].Close = strings.TrimSpace(form.OpeningHours[i].Close)
	}
	return form
}
