package team

import (
	"strings"

	"github.com/platehub/backoffice/internal/xano"
)

// Roles a member can be given from the dashboard. Owners are created by the API.
var Roles = []string{"admin", "manager", "cashier", "kitchen", "rider"}

// Member is a staff account scoped to a restaurant and optionally a branch.
type Member struct {
	ID         int64     `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	BranchID   *int64    `json:"branch_id"`
	BranchName string    `json:"branch_name"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  xano.Time `json:"created_at"`
}

// FullName joins first and last name.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// MemberForm is submitted by the add and edit member screens.
type MemberForm struct {
	FirstName string `form:"first_name" json:"first_name" validate:"required,max=60"`
	LastName  string `form:"last_name" json:"last_name" validate:"required,max=60"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Phone     string `form:"phone" json:"phone" validate:"max=32"`
	Role      string `form:"role" json:"role" validate:"required,oneof=admin manager cashier kitchen rider"`
	BranchID  *int64 `form:"branch_id" json:"branch_id"`
	IsActive  bool   `form:"is_active" json:"is_active"`
}

// FormFrom prefills the edit form.
func FormFrom(m Member) MemberForm {
	return MemberForm{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		Role:      m.Role,
		BranchID:  m.BranchID,
		IsActive:  m.IsActive,
	}
}
