package team

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Service wraps the /team_member endpoints.
type Service struct {
	api      xano.API
	validate *validator.Validate
}

// NewService constructs the team service.
func NewService(api xano.API) *Service {
	return &Service{api: api, validate: shared.NewValidator()}
}

func memberPath(id int64) string {
	return fmt.Sprintf("/team_member/%d", id)
}

// List returns members, limited to one branch when branch is set.
func (s *Service) List(ctx context.Context, branch *int64) ([]Member, error) {
	query := url.Values{}
	if branch != nil {
		query.Set("branch_id", strconv.FormatInt(*branch, 10))
	}
	var out []Member
	if err := s.api.Get(ctx, "/team_member", xano.TokenFromContext(ctx), query, &out); err != nil {
		return nil, fmt.Errorf("team: list: %w", err)
	}
	return out, nil
}

// Get loads one member.
func (s *Service) Get(ctx context.Context, id int64) (*Member, error) {
	var out Member
	if err := s.api.Get(ctx, memberPath(id), xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("team: get %d: %w", id, err)
	}
	return &out, nil
}

// Validate normalises the form and checks it before any API call.
func (s *Service) Validate(form *MemberForm) error {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Phone = strings.TrimSpace(form.Phone)
	form.Role = strings.ToLower(strings.TrimSpace(form.Role))
	if err := s.validate.Struct(form); err != nil {
		return shared.ValidationFieldErrors(err)
	}
	return nil
}

// Create adds a member.
func (s *Service) Create(ctx context.Context, form MemberForm) (*Member, error) {
	if err := s.Validate(&form); err != nil {
		return nil, err
	}
	var out Member
	if err := s.api.Post(ctx, "/team_member", xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("team: create: %w", err)
	}
	return &out, nil
}

// Update saves a member.
func (s *Service) Update(ctx context.Context, id int64, form MemberForm) (*Member, error) {
	if err := s.Validate(&form); err != nil {
		return nil, err
	}
	var out Member
	if err := s.api.Patch(ctx, memberPath(id), xano.TokenFromContext(ctx), form, &out); err != nil {
		return nil, fmt.Errorf("team: update %d: %w", id, err)
	}
	return &out, nil
}

// Delete removes a member.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, memberPath(id), xano.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("team: delete %d: %w", id, err)
	}
	return nil
}
