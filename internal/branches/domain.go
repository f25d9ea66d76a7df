package branches

import "github.com/platehub/backoffice/internal/xano"

// Weekdays lists the days in the order the edit form shows them.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayHours is the opening window of one weekday.
type DayHours struct {
	Day    string `json:"day"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// Branch is a physical restaurant location.
type Branch struct {
	ID           int64      `json:"id"`
	RestaurantID int64      `json:"restaurant_id"`
	Name         string     `json:"name"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	IsActive     bool       `json:"is_active"`
	OpeningHours []DayHours `json:"opening_hours"`
	CreatedAt    xano.Time  `json:"created_at"`
}

// BranchForm is the editable part of a branch.
type BranchForm struct {
	Name         string     `form:"name" json:"name" validate:"notblank,max=120"`
	Address      string     `form:"address" json:"address" validate:"notblank"`
	Phone        string     `form:"phone" json:"phone" validate:"max=32"`
	IsActive     bool       `form:"is_active" json:"is_active"`
	OpeningHours []DayHours `form:"-" json:"opening_hours"`
}

// FormFrom prefills the edit form, filling in any weekday the record lacks.
func FormFrom(b Branch) BranchForm {
	return BranchForm{
		Name:         b.Name,
		Address:      b.Address,
		Phone:        b.Phone,
		IsActive:     b.IsActive,
		OpeningHours: normalizeHours(b.OpeningHours),
	}
}

// EmptyForm is the form for a new branch.
func EmptyForm() BranchForm {
	return BranchForm{IsActive: true, OpeningHours: normalizeHours(nil)}
}

func normalizeHours(hours []DayHours) []DayHours {
	byDay := make(map[string]DayHours, len(hours))
	for _, h := range hours {
		byDay[h.Day] = h
	}
	out := make([]DayHours, 0, len(Weekdays))
	for _, day := range Weekdays {
		h, ok := byDay[day]
		if !ok {
			h = DayHours{Day: day, Open: "09:00", Close: "22:00"}
		}
		out = append(out, h)
	}
	return out
}

// Option is a branch filter entry.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
