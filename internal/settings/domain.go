package settings

import (
	"github.com/platehub/backoffice/internal/permissions"
	"github.com/platehub/backoffice/internal/xano"
)

// Config holds the feature switches of a restaurant.
type Config struct {
	IsMultiBranch       bool `json:"is_multi_branch"`
	HasDelivery         bool `json:"has_delivery"`
	HasInventory        bool `json:"has_inventory"`
	HasReports          bool `json:"has_reports"`
	AllowTeamManagement bool `json:"allow_team_management"`
	OwnerOnlySettings   bool `json:"owner_only_settings"`
}

// Restaurant is the tenant record every other resource belongs to.
type Restaurant struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Currency  string    `json:"currency"`
	LogoURL   string    `json:"logo_url"`
	Config    Config    `json:"config"`
	CreatedAt xano.Time `json:"created_at"`
}

// Flags combines the restaurant switches with a member role.
func (r Restaurant) Flags(role string) permissions.Flags {
	return permissions.Flags{
		IsMultiBranch:       r.Config.IsMultiBranch,
		HasDelivery:         r.Config.HasDelivery,
		HasInventory:        r.Config.HasInventory,
		HasReports:          r.Config.HasReports,
		AllowTeamManagement: r.Config.AllowTeamManagement,
		OwnerOnlySettings:   r.Config.OwnerOnlySettings,
		Role:                role,
	}
}

// RestaurantForm is the editable part of a restaurant.
type RestaurantForm struct {
	Name     string `form:"name" json:"name" validate:"required,max=120"`
	Phone    string `form:"phone" json:"phone" validate:"max=32"`
	Email    string `form:"email" json:"email" validate:"omitempty,email"`
	Currency string `form:"currency" json:"currency" validate:"required,len=3"`
	Config   Config `form:"-" json:"config"`
}

// FormFrom prefills the edit form.
func FormFrom(r Restaurant) RestaurantForm {
	return RestaurantForm{Name: r.Name, Phone: r.Phone, Email: r.Email, Currency: r.Currency, Config: r.Config}
}
