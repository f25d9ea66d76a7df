package settings

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Service reads and edits the restaurant record.
type Service struct {
	api      xano.API
	validate *validator.Validate
}

// NewService constructs the settings service.
func NewService(api xano.API) *Service {
	return &Service{api: api, validate: shared.NewValidator()}
}

func restaurantPath(id int64) string {
	return fmt.Sprintf("/restaurant/%d", id)
}

// GetRestaurant loads the restaurant by id.
func (s *Service) GetRestaurant(ctx context.Context, id int64) (*Restaurant, error) {
	var out Restaurant
	if err := s.api.Get(ctx, restaurantPath(id), xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("settings: get restaurant: %w", err)
	}
	return &out, nil
}

// UpdateRestaurant validates and saves the form.
func (s *Service) UpdateRestaurant(ctx context.Context, id int64, form RestaurantForm) (*Restaurant, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Currency = strings.ToUpper(strings.TrimSpace(form.Currency))
	if err := s.validate.Struct(form); err != nil {
		return nil, shared.ValidationFieldErrors(err)
	}
	var out Restaurant
	if err := s.api.Patch(ctx, restaurantPath(id), xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("settings: update restaurant: %w", err)
	}
	return &out, nil
}

// UploadLogo replaces the restaurant logo.
func (s *Service) UploadLogo(ctx context.Context, id int64, logo *xano.File) (*Restaurant, error) {
	if logo == nil {
		return nil, shared.FieldErrors{"logo": "Choose an image to upload"}
	}
	logo.Field = "logo"
	var out Restaurant
	err := s.api.Upload(ctx, http.MethodPost, restaurantPath(id)+"/logo", xano.TokenFromContext(ctx), nil, []xano.File{*logo}, &out)
	if err != nil {
		return nil, fmt.Errorf("settings: upload logo: %w", err)
	}
	return &out, nil
}
