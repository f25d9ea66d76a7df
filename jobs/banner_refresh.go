package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/platehub/backoffice/internal/jobs"
	"github.com/platehub/backoffice/internal/notifications"
	"github.com/platehub/backoffice/internal/xano"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// BannerRefreshJob copies the broadcast banner into the layout cache.
type BannerRefreshJob struct {
	Service *notifications.Service
	Banners *notifications.BannerStore
	// Token authenticates the worker against the API; the banner endpoint
	// also answers anonymous calls.
	Token   string
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	Timeout time.Duration
}

// Handle refreshes the banner. API failures are logged and swallowed so the
// previous banner stays until its TTL runs out.
func (j *BannerRefreshJob) Handle(ctx context.Context, _ *asynq.Task) error {
	tracker := metricsOrDefault(j.Metrics).Track(TaskBannerRefresh)
	ctx, cancel := withTimeout(ctx, j.Timeout)
	defer cancel()
	if j.Token != "" {
		ctx = xano.ContextWithToken(ctx, j.Token)
	}
	if err := tracker.End(j.Banners.Refresh(ctx, j.Service)); err != nil {
		jobLogger(j.Logger, TaskBannerRefresh).Warn("banner refresh failed", slog.Any("error", err))
	}
	return nil
}

func metricsOrDefault(m *jobmetrics.Metrics) *jobmetrics.Metrics {
	if m != nil {
		return m
	}
	return defaultJobMetrics
}

func jobLogger(logger *slog.Logger, job string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("job", job))
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 20 * time.Second
	}
	return context.WithTimeout(ctx, d)
}
