package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/shared"
)

func TestValidateFood(t *testing.T) {
	form := FoodForm{Name: "  Burger ", CategoryID: 2, PriceRaw: "12.50"}
	require.NoError(t, ValidateFood(&form))
	assert.Equal(t, "Burger", form.Name)
	assert.InDelta(t, 12.5, form.Price, 0.0001)

	form = FoodForm{PriceRaw: "-1"}
	err := ValidateFood(&form)
	var fields shared.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Name is required", fields["name"])
	assert.Equal(t, "Choose a category", fields["category_id"])
	assert.Equal(t, "Price cannot be negative", fields["price"])

	form = FoodForm{Name: "Soup", CategoryID: 1, PriceRaw: "abc"}
	require.ErrorAs(t, ValidateFood(&form), &fields)
	assert.Equal(t, "Price must be a number", fields["price"])
}

func TestExtrasGroupValidate(t *testing.T) {
	cases := []struct {
		name  string
		group ExtrasGroup
		want  map[string]string
	}{
		{"valid", ExtrasGroup{Name: "Sauces", Min: 0, Max: 2, Extras: []Extra{{Name: "Mayo", Price: 0.5}}}, map[string]string{}},
		{"empty name", ExtrasGroup{Max: 1}, map[string]string{"name": "Group name is required"}},
		{"max below min", ExtrasGroup{Name: "x", Min: 2, Max: 1}, map[string]string{"max": "Maximum must not be less than the minimum"}},
		{"zero max with items", ExtrasGroup{Name: "x", Extras: []Extra{{Name: "a"}}}, map[string]string{"max": "Maximum must be at least 1"}},
		{"zero max without items", ExtrasGroup{Name: "x"}, map[string]string{}},
		{"negative min", ExtrasGroup{Name: "x", Min: -1, Max: 1}, map[string]string{"min": "Minimum cannot be negative"}},
		{"bad extra", ExtrasGroup{Name: "x", Max: 1, Extras: []Extra{{Price: -2}}}, map[string]string{
			"extras.0.name": "Extra name is required", "extras.0.price": "Price cannot be negative",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, shared.FieldErrors(tc.want), tc.group.Validate(""))
		})
	}
}

func TestValidateGroupsPrefixesIndex(t *testing.T) {
	err := ValidateGroups([]ExtrasGroup{{Name: "ok", Max: 1}, {Max: 1}})
	var fields shared.FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Group name is required", fields["groups.1.name"])
	assert.Len(t, fields, 1)
}

func TestValidateCategory(t *testing.T) {
	require.NoError(t, ValidateCategory(CategoryForm{Name: "Mains", SortOrder: 2}))

	var fields shared.FieldErrors
	require.ErrorAs(t, ValidateCategory(CategoryForm{Name: "   ", SortOrder: -1}), &fields)
	assert.Equal(t, shared.FieldErrors{
		"name":       "Name is required",
		"sort_order": "Sort order cannot be negative",
	}, fields)
}

func TestExtrasGroupErrorsNameEveryExtra(t *testing.T) {
	group := ExtrasGroup{Name: "Sauces", Max: 2, Extras: []Extra{{Name: "Mayo"}, {Name: " ", Price: 0.5}, {Name: "Aioli", Price: -1}}}
	assert.Equal(t, shared.FieldErrors{
		"groups.0.extras.1.name":  "Extra name is required",
		"groups.0.extras.2.price": "Price cannot be negative",
	}, group.Validate("groups.0."))
}
