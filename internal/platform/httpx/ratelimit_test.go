package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/platehub/backoffice/internal/shared"
)

func TestLimitPerUserKeysBySessionUser(t *testing.T) {
	handler := LimitPerUser(1, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(user string) int {
		sess := &shared.Session{ID: user}
		sess.SetUser(user)
		req := httptest.NewRequest(http.MethodGet, "/export.csv", nil)
		req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("1"))
	assert.Equal(t, http.StatusTooManyRequests, call("1"))
	assert.Equal(t, http.StatusNoContent, call("2"), "other users share the IP but not the budget")
}
