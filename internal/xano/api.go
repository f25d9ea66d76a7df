package xano

import (
	"context"
	"net/url"
)

// API is the subset of Client the feature services depend on.
type API interface {
	Get(ctx context.Context, path, token string, query url.Values, out any) error
	Post(ctx context.Context, path, token string, body, out any) error
	Patch(ctx context.Context, path, token string, body, out any) error
	Delete(ctx context.Context, path, token string) error
	Upload(ctx context.Context, method, path, token string, fields map[string]string, files []File, out any) error
}

var _ API = (*Client)(nil)
