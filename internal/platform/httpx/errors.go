// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

// RespondError maps backend and domain errors to RFC7807 responses.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", shared.UserSafeMessage(err))
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", shared.UserSafeMessage(err))
	case errors.Is(err, xano.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "")
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
