package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/platehub/backoffice/internal/settings"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// Service wraps the authentication endpoints.
type Service struct {
	api         xano.API
	restaurants *settings.Service
}

// NewService constructs a new Service.
func NewService(api xano.API, restaurants *settings.Service) *Service {
	return &Service{api: api, restaurants: restaurants}
}

// Authenticate exchanges credentials for a token, then loads the member and
// the restaurant flags that drive navigation.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Login, error) {
	var resp loginResponse
	body := map[string]string{"email": strings.TrimSpace(email), "password": password}
	if err := s.api.Post(ctx, "/auth/login", "", body, &resp); err != nil {
		if errors.Is(err, xano.ErrUnauthorized) || errors.Is(err, xano.ErrInvalidInput) || errors.Is(err, xano.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: login: %w", err)
	}
	if resp.AuthToken == "" {
		return nil, shared.ErrInvalidCredentials
	}

	var user User
	if err := s.api.Get(ctx, "/auth/me", resp.AuthToken, nil, &user); err != nil {
		return nil, fmt.Errorf("auth: me: %w", err)
	}

	restaurant, err := s.restaurants.GetRestaurant(xano.ContextWithToken(ctx, resp.AuthToken), user.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("auth: restaurant: %w", err)
	}
	return &Login{Token: resp.AuthToken, User: user, Flags: restaurant.Flags(user.Role)}, nil
}

// ForgotPassword asks the API to email a one-time code.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if err := s.api.Post(ctx, "/auth/forgot-password", "", map[string]string{"email": email}, nil); err != nil {
		return fmt.Errorf("auth: forgot password: %w", err)
	}
	return nil
}

// VerifyOTP trades the emailed code for a reset token.
func (s *Service) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	var resp verifyResponse
	if err := s.api.Post(ctx, "/auth/verify-otp", "", map[string]string{"email": email, "otp": code}, &resp); err != nil {
		return "", fmt.Errorf("auth: verify otp: %w", err)
	}
	if resp.ResetToken == "" {
		return "", shared.FieldErrors{"otp": "The code is invalid or has expired"}
	}
	return resp.ResetToken, nil
}

// ResetPassword sets a new password using a reset token.
func (s *Service) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"reset_token": resetToken, "password": password}
	if err := s.api.Post(ctx, "/auth/reset-password", "", body, nil); err != nil {
		return fmt.Errorf("auth: reset password: %w", err)
	}
	return nil
}
