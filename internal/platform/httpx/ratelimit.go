package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"

	"github.com/platehub/backoffice/internal/shared"
)

// LimitPerUser throttles a route group per signed in user, falling back to
// the client IP for anonymous requests.
func LimitPerUser(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(userKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
}

func userKey(r *http.Request) (string, error) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		if user := strings.TrimSpace(sess.User()); user != "" {
			return "user:" + user, nil
		}
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
