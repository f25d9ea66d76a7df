package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/xano"
)

func TestRespondErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("load: %w", shared.ErrNotFound), http.StatusNotFound},
		{shared.FieldErrors{"name": "Name is required"}, http.StatusBadRequest},
		{&xano.APIError{Status: http.StatusUnauthorized}, http.StatusUnauthorized},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		require.Equal(t, tc.status, rec.Code)

		var body ProblemDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Status)
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("dial tcp 10.0.0.1: refused"))

	var body ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Detail)
}

func TestProblemUsesProblemMediaType(t *testing.T) {
	rec := httptest.NewRecorder()
	Problem(rec, http.StatusServiceUnavailable, "Queue unavailable", "")

	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"type":"about:blank","title":"Queue unavailable","status":503}`, rec.Body.String())

	rec = httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]int{"pending": 2})
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
