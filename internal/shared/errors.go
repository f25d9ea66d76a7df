package shared

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation marks input rejected before reaching the API.
	ErrValidation = errors.New("validation failed")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// FieldErrors maps form fields to display messages.
type FieldErrors map[string]string

// Error implements error, listing fields in a stable order.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrValidation) match field errors.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// UserSafeMessage converts an error into text that may be shown on a page.
func UserSafeMessage(err error) string {
	if err == nil {
		return ""
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		for _, field := range []string{"general", "name"} {
			if msg, ok := fe[field]; ok {
				return msg
			}
		}
		if len(fe) == 1 {
			for _, msg := range fe {
				return msg
			}
		}
		return "Please correct the highlighted fields"
	}
	var safe interface{ SafeMessage() string }
	if errors.As(err, &safe) {
		if msg := safe.SafeMessage(); msg != "" {
			return msg
		}
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "The requested record no longer exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid email or password"
	}
	return "Something went wrong, please try again"
}

// FormErrors returns the field errors carried by err, or a general message.
func FormErrors(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return FieldErrors{"general": UserSafeMessage(err)}
}
