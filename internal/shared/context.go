package shared

import (
	"context"
	"strconv"
	"strings"
)

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// SelectedBranch returns the branch chosen in the branch filter, nil meaning all branches.
func SelectedBranch(sess *Session) *int64 {
	raw := strings.TrimSpace(sess.Get(SessionKeySelectedBranch))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// SelectBranch persists the branch filter choice. A nil id clears it.
func SelectBranch(sess *Session, id *int64) {
	if sess == nil {
		return
	}
	if id == nil || *id <= 0 {
		sess.Delete(SessionKeySelectedBranch)
		return
	}
	sess.Set(SessionKeySelectedBranch, strconv.FormatInt(*id, 10))
}

// RestaurantID returns the restaurant of the signed in member, 0 when unknown.
func RestaurantID(sess *Session) int64 {
	id, err := strconv.ParseInt(sess.Get(SessionKeyRestaurantID), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
