package xano

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/platehub/backoffice/internal/shared"
)

var (
	// ErrUnauthorized is matched by 401 and 403 responses.
	ErrUnauthorized = errors.New("xano: unauthorized")
	// ErrNotFound is matched by 404 responses.
	ErrNotFound = shared.ErrNotFound
	// ErrInvalidInput is matched by 400 and 422 responses.
	ErrInvalidInput = shared.ErrValidation
)

// APIError describes a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Code    string
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("xano: %s %s: %d %s: %s", e.Method, e.Path, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("xano: %s %s: %d", e.Method, e.Path, e.Status)
}

// Is maps HTTP status families onto package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrInvalidInput:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	}
	return false
}

// SafeMessage returns the backend message for input errors only; anything
// else could leak internals.
func (e *APIError) SafeMessage() string {
	if e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity {
		return e.Message
	}
	return ""
}

// errorBody is the error envelope returned by Xano.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
