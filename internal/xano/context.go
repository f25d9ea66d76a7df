package xano

import "context"

type tokenContextKey struct{}

// ContextWithToken attaches the API token used by services for this request.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext returns the token set by ContextWithToken, or "".
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}
