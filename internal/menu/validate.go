package menu

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/platehub/backoffice/internal/shared"
)

var validate = newValidator()

var messages = shared.Messages{
	"category_id.gt":       "Choose a category",
	"price.gte":            "Price cannot be negative",
	"sort_order.gte":       "Sort order cannot be negative",
	"name.notblank":        "Name is required",
	"min.gte":              "Minimum cannot be negative",
	"max.gtefield":         "Maximum must not be less than the minimum",
	"max.items_max":        "Maximum must be at least 1",
	"extras.name.notblank": "Extra name is required",
	"extras.price.gte":     "Price cannot be negative",
}

// groupMessages replaces the generic name wording inside the extras wizard.
var groupMessages = func() shared.Messages {
	out := make(shared.Messages, len(messages))
	for k, v := range messages {
		out[k] = v
	}
	out["name.notblank"] = "Group name is required"
	return out
}()

func newValidator() *validator.Validate {
	v := shared.NewValidator()
	v.RegisterStructValidation(groupRules, ExtrasGroup{})
	return v
}

// groupRules requires room for at least one pick once a group has items.
func groupRules(sl validator.StructLevel) {
	g := sl.Current().Interface().(ExtrasGroup)
	if len(g.Extras) > 0 && g.Max < 1 && g.Max >= g.Min {
		sl.ReportError(g.Max, "max", "Max", "items_max", "")
	}
}

// ValidateCategory checks a category form.
func ValidateCategory(form CategoryForm) error {
	if err := validate.Struct(form); err != nil {
		return shared.ValidationFieldErrorsWith(err, messages)
	}
	return nil
}

// ValidateFood checks a food form. PriceRaw, when set, is parsed into Price.
func ValidateFood(form *FoodForm) error {
	form.Name = strings.TrimSpace(form.Name)
	priceErr := ""
	if raw := strings.TrimSpace(form.PriceRaw); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			priceErr = "Price must be a number"
		} else {
			form.Price = price
		}
	}
	errs := shared.FieldErrors{}
	if err := validate.Struct(form); err != nil {
		errs = shared.ValidationFieldErrorsWith(err, messages)
	}
	if priceErr != "" {
		errs["price"] = priceErr
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Validate checks one extras group. Field keys are prefixed with prefix so a
// form holding several groups can place messages next to the right inputs.
func (g ExtrasGroup) Validate(prefix string) shared.FieldErrors {
	errs := shared.FieldErrors{}
	if err := validate.Struct(g); err != nil {
		for k, v := range shared.ValidationFieldErrorsWith(err, groupMessages) {
			errs[prefix+k] = v
		}
	}
	return errs
}

// ValidateGroups checks every group, keying errors as "groups.<i>.<field>".
func ValidateGroups(groups []ExtrasGroup) error {
	errs := shared.FieldErrors{}
	for i, g := range groups {
		for k, v := range g.Validate("groups." + strconv.Itoa(i) + ".") {
			errs[k] = v
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
