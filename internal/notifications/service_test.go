package notifications

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/testing/webtest"
	"github.com/platehub/backoffice/internal/xano"
)

func TestBannerVisible(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	var nilBanner *Banner
	assert.False(t, nilBanner.Visible(now))
	assert.False(t, (&Banner{Message: "x"}).Visible(now))
	assert.True(t, (&Banner{Message: "x", Active: true}).Visible(now))
	expired := &Banner{Message: "x", Active: true, ExpiresAt: xano.Time{Time: now.Add(-time.Minute)}}
	assert.False(t, expired.Visible(now))
}

func TestBannerStoreRefreshAndForget(t *testing.T) {
	env := webtest.New(t)
	env.API.Reply("GET /banner", http.StatusOK, map[string]any{"message": "Card payments are down", "level": "warning", "is_active": true})
	svc := NewService(env.API.Client)
	store := NewBannerStore(cache.NewVersioned(env.Redis, "notifications", time.Minute), 3*time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	assert.Nil(t, store.Current(ctx), "cold cache shows no banner")

	require.NoError(t, store.Refresh(ctx, svc))
	banner := store.Current(ctx)
	require.NotNil(t, banner)
	assert.Equal(t, "Card payments are down", banner.Message)
	assert.True(t, env.Miniredis.Exists("notifications:banner"))

	env.API.Reply("GET /banner", http.StatusOK, map[string]any{"message": "", "is_active": false})
	require.NoError(t, store.Refresh(ctx, svc))
	assert.Nil(t, store.Current(ctx))
}

func TestBannerStoreKeepsLastValueOnFailure(t *testing.T) {
	env := webtest.New(t)
	env.API.Reply("GET /banner", http.StatusOK, map[string]any{"message": "Closed on Monday", "is_active": true})
	svc := NewService(env.API.Client)
	store := NewBannerStore(cache.NewVersioned(env.Redis, "notifications", time.Minute), time.Hour, nil)
	ctx := context.Background()
	require.NoError(t, store.Refresh(ctx, svc))

	env.API.Reply("GET /banner", http.StatusBadGateway, map[string]any{"message": "upstream"})
	assert.Error(t, store.Refresh(ctx, svc))
	require.NotNil(t, store.Current(ctx))
}

func TestUnread(t *testing.T) {
	assert.Equal(t, 1, Unread([]Notification{{IsRead: true}, {}}))
}
