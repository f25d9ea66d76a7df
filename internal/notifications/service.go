package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/xano"
)

// Service wraps the notification and banner endpoints.
type Service struct {
	api xano.API
}

// NewService constructs the notification service.
func NewService(api xano.API) *Service {
	return &Service{api: api}
}

// List returns the member's notifications, newest first.
func (s *Service) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.api.Get(ctx, "/notifications", xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("notifications: list: %w", err)
	}
	return out, nil
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if err := s.api.Patch(ctx, fmt.Sprintf("/notifications/%d/read", id), xano.TokenFromContext(ctx), nil, nil); err != nil {
		return fmt.Errorf("notifications: mark read %d: %w", id, err)
	}
	return nil
}

// MarkAllRead flags every notification as read.
func (s *Service) MarkAllRead(ctx context.Context) error {
	if err := s.api.Post(ctx, "/notifications/read_all", xano.TokenFromContext(ctx), nil, nil); err != nil {
		return fmt.Errorf("notifications: mark all read: %w", err)
	}
	return nil
}

// Banner fetches the current broadcast banner. An empty answer yields nil.
func (s *Service) Banner(ctx context.Context) (*Banner, error) {
	var out *Banner
	if err := s.api.Get(ctx, "/banner", xano.TokenFromContext(ctx), nil, &out); err != nil {
		return nil, fmt.Errorf("notifications: banner: %w", err)
	}
	return out, nil
}

const bannerKey = "banner"

// BannerStore keeps the last fetched banner in Redis for the page layout.
type BannerStore struct {
	cache  *cache.Versioned
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewBannerStore constructs a store whose entries live for ttl, normally a
// few refresh intervals so one failed refresh does not blank the banner.
func NewBannerStore(c *cache.Versioned, ttl time.Duration, logger *slog.Logger) *BannerStore {
	return &BannerStore{cache: c, ttl: ttl, logger: logger, now: time.Now}
}

// Refresh fetches the banner and stores it. Hidden banners are removed.
func (b *BannerStore) Refresh(ctx context.Context, svc *Service) error {
	banner, err := svc.Banner(ctx)
	if err != nil {
		return err
	}
	if !banner.Visible(b.now()) {
		return b.cache.Forget(ctx, bannerKey)
	}
	return b.cache.PutJSON(ctx, bannerKey, banner, b.ttl)
}

// Current returns the stored banner or nil. Cache failures are logged and
// read as no banner.
func (b *BannerStore) Current(ctx context.Context) *Banner {
	banner, err := b.Lookup(ctx)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("read cached banner", slog.Any("error", err))
		}
		return nil
	}
	return banner
}

// Lookup returns the stored banner, nil when none is showing.
func (b *BannerStore) Lookup(ctx context.Context) (*Banner, error) {
	if b == nil {
		return nil, nil
	}
	var banner Banner
	found, err := b.cache.GetJSON(ctx, bannerKey, &banner)
	if err != nil {
		return nil, fmt.Errorf("notifications: read banner: %w", err)
	}
	if !found || !banner.Visible(b.now()) {
		return nil, nil
	}
	return &banner, nil
}
