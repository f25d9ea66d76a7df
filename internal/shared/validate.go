package shared

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Messages overrides the default wording per rule. Keys are the dotted field
// path without slice indexes followed by the tag, e.g. "extras.price.gte".
type Messages map[string]string

// NewValidator returns a validator that reports fields by their `form` tag.
// It also knows "notblank", which rejects whitespace-only strings.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	return v
}

// ValidationFieldErrors turns validator output into display messages keyed by form field.
// Errors that did not come from the validator are returned as a general message.
func ValidationFieldErrors(err error) FieldErrors {
	return ValidationFieldErrorsWith(err, nil)
}

// ValidationFieldErrorsWith is ValidationFieldErrors with per-form wording.
// Nested fields are keyed by path, such as "extras.0.name".
func ValidationFieldErrorsWith(err error, msgs Messages) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"general": UserSafeMessage(err)}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		path, rule := fieldPath(fe)
		if _, seen := out[path]; seen {
			continue
		}
		if msg, ok := msgs[rule+"."+fe.Tag()]; ok {
			out[path] = msg
			continue
		}
		out[path] = fieldMessage(fe)
	}
	return out
}

// fieldPath drops the struct name from the namespace and returns the path
// with and without slice indexes.
func fieldPath(fe validator.FieldError) (string, string) {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.NewReplacer("[", ".", "]", "").Replace(ns)
	parts := strings.Split(ns, ".")
	named := make([]string, 0, len(parts))
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			named = append(named, p)
		}
	}
	return ns, strings.Join(named, ".")
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return label + " must be at least " + fe.Param() + " characters"
		}
		return label + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return label + " must be at most " + fe.Param() + " characters"
		}
		return label + " must be at most " + fe.Param()
	case "gte":
		return label + " must be at least " + fe.Param()
	case "gt":
		return label + " must be greater than " + fe.Param()
	case "gtefield":
		return label + " must not be less than " + humanize(fe.Param())
	case "len":
		return label + " must be " + fe.Param() + " characters"
	case "numeric":
		return label + " must contain digits only"
	case "oneof":
		return "Choose a valid " + strings.ToLower(label)
	case "eqfield":
		return label + " does not match"
	}
	return label + " is invalid"
}

func humanize(field string) string {
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
