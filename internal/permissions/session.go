package permissions

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/platehub/backoffice/internal/shared"
)

// SessionKey stores the serialised Flags.
const SessionKey = "restaurant_flags"

// Check is a permission predicate.
type Check func(Flags) bool

// Store saves flags on the session.
func Store(sess *shared.Session, f Flags) {
	if sess == nil {
		return
	}
	raw, err := json.Marshal(f)
	if err != nil {
		return
	}
	sess.Set(SessionKey, string(raw))
}

// FromSession reads flags back; a missing or corrupt value yields zero flags,
// which grant nothing beyond notifications.
func FromSession(sess *shared.Session) Flags {
	raw := sess.Get(SessionKey)
	if raw == "" {
		return Flags{}
	}
	var f Flags
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return Flags{}
	}
	return f
}

// FromRequest reads flags from the request session.
func FromRequest(r *http.Request) Flags {
	return FromSession(shared.SessionFromContext(r.Context()))
}

// Guard rejects requests whose flags fail check.
func Guard(logger *slog.Logger, check Check) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if check(FromRequest(r)) {
				next.ServeHTTP(w, r)
				return
			}
			if logger != nil {
				logger.Warn("permission denied", slog.String("path", r.URL.Path))
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}
