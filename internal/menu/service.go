package menu

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Service wraps the menu category, food and extras endpoints.
type Service struct {
	api xano.API
}

// NewService constructs the menu service.
func NewService(api xano.API) *Service {
	return &Service{api: api}
}

func categoryPath(id int64) string { return fmt.Sprintf("/menu_category/%d", id) }
func foodPath(id int64) string     { return fmt.Sprintf("/food/%d", id) }

// ListCategories returns every category in display order.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.api.Get(ctx, "/menu_category", xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("menu: list categories: %w", err)
	}
	return out, nil
}

// CreateCategory adds a category.
func (s *Service) CreateCategory(ctx context.Context, form CategoryForm) (*Category, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := ValidateCategory(form); err != nil {
		return nil, err
	}
	var out Category
	if err := s.api.Post(ctx, "/menu_category", xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("menu: create category: %w", err)
	}
	return &out, nil
}

// UpdateCategory renames or reorders a category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, form CategoryForm) (*Category, error) {
	form.Name = strings.TrimSpace(form.Name)
	if err := ValidateCategory(form); err != nil {
		return nil, err
	}
	var out Category
	if err := s.api.Patch(ctx, categoryPath(id), xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("menu: update category %d: %w", id, err)
	}
	return &out, nil
}

// DeleteCategory removes a category.
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, categoryPath(id), xano.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("menu: delete category %d: %w", id, err)
	}
	return nil
}

// ListFoods returns foods, optionally limited to one category and a search term.
func (s *Service) ListFoods(ctx context.Context, filter FoodFilter) ([]Food, error) {
	query := url.Values{}
	if filter.CategoryID > 0 {
		query.Set("category_id", strconv.FormatInt(filter.CategoryID, 10))
	}
	var all []Food
	if err := s.api.Get(ctx, "/food", xano.TokenFromContext(ctx), query, &all); err != nil {
		return nil, fmt.Errorf("menu: list foods: %w", err)
	}
	out := all[:0]
	for _, f := range all {
		if filter.Matches(f) {
			out = append(out, f)
		}
	}
	return out, nil
}

// GetFood loads one food with its extras groups.
func (s *Service) GetFood(ctx context.Context, id int64) (*Food, error) {
	var out Food
	if err := s.api.Get(ctx, foodPath(id), xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("menu: get food %d: %w", id, err)
	}
	return &out, nil
}

// CreateFood validates the form and sends it as multipart with an optional image.
func (s *Service) CreateFood(ctx context.Context, form FoodForm, image *xano.File) (*Food, error) {
	if err := ValidateFood(&form); err != nil {
		return nil, err
	}
	var out Food
	if err := s.api.Upload(ctx, http.MethodPost, "/food", xano.TokenFromContext(ctx), foodFields(form), imageFiles(image), &out); err != nil {
		return nil, fmt.Errorf("menu: create food: %w", err)
	}
	return &out, nil
}

// UpdateFood saves a food. A nil image keeps the current one.
func (s *Service) UpdateFood(ctx context.Context, id int64, form FoodForm, image *xano.File) (*Food, error) {
	if err := ValidateFood(&form); err != nil {
		return nil, err
	}
	var out Food
	if err := s.api.Upload(ctx, http.MethodPatch, foodPath(id), xano.TokenFromContext(ctx), foodFields(form), imageFiles(image), &out); err != nil {
		return nil, fmt.Errorf("menu: update food %d: %w", id, err)
	}
	return &out, nil
}

// DeleteFood removes a food.
func (s *Service) DeleteFood(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, foodPath(id), xano.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("menu: delete food %d: %w", id, err)
	}
	return nil
}

// ToggleAvailability flips whether a food can be ordered.
func (s *Service) ToggleAvailability(ctx context.Context, id int64, available bool) (*Food, error) {
	var out Food
	body := map[string]bool{"is_available": available}
	if err := s.api.Patch(ctx, foodPath(id)+"/availability", xano.TokenFromContext(ctx), body, &out); err != nil {
		return nil, fmt.Errorf("menu: toggle availability %d: %w", id, err)
	}
	return &out, nil
}

// ListExtrasGroups returns the extras groups attached to a food.
func (s *Service) ListExtrasGroups(ctx context.Context, foodID int64) ([]ExtrasGroup, error) {
	var out []ExtrasGroup
	if err := s.api.Get(ctx, foodPath(foodID)+"/extras_group", xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("menu: list extras groups %d: %w", foodID, err)
	}
	return out, nil
}

// SaveExtrasGroups stores new extras groups for a food in one call.
func (s *Service) SaveExtrasGroups(ctx context.Context, foodID int64, groups []ExtrasGroup) ([]ExtrasGroup, error) {
	if len(groups) == 0 {
		return nil, shared.FieldErrors{"general": "Add at least one extras group"}
	}
	if err := ValidateGroups(groups); err != nil {
		return nil, err
	}
	var out []ExtrasGroup
	body := map[string]any{"groups": groups}
	if err := s.api.Post(ctx, foodPath(foodID)+"/extras_group", xano.TokenFromContext(ctx), body, &out); err != nil {
		return nil, fmt.Errorf("menu: save extras groups %d: %w", foodID, err)
	}
	return out, nil
}

// DeleteExtrasGroup removes one extras group.
func (s *Service) DeleteExtrasGroup(ctx context.Context, groupID int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/extras_group/%d", groupID), xano.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("menu: delete extras group %d: %w", groupID, err)
	}
	return nil
}

func foodFields(form FoodForm) map[string]string {
	return map[string]string{
		"name":         form.Name,
		"description":  strings.TrimSpace(form.Description),
		"category_id":  strconv.FormatInt(form.CategoryID, 10),
		"price":        strconv.FormatFloat(form.Price, 'f', 2, 64),
		"is_available": strconv.FormatBool(form.IsAvailable),
	}
}

func imageFiles(image *xano.File) []xano.File {
	if image == nil {
		return nil
	}
	image.Field = "image"
	return []xano.File{*image}
}
