package auth

import (
	"strings"

	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/xano"
)

// User represents the signed in team member as returned by /auth/me.
type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RestaurantID int64     `json:"restaurant_id"`
	BranchID     *int64    `json:"branch_id"`
	CreatedAt    xano.Time `json:"created_at"`
}

// DisplayName is shown in the dashboard header.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// Login is the outcome of a successful sign in.
type Login struct {
	Token string
	User  User
	Flags permissions.Flags
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

type verifyResponse struct {
	ResetToken string `json:"reset_token"`
}
