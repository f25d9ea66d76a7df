package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/platehub/backoffice/internal/jobs"
)

// VersionBumper invalidates a versioned cache.
type VersionBumper interface {
	Bump(ctx context.Context) (int64, error)
}

// OverviewWarmupJob bumps the overview cache version so the next page view
// loads fresh figures.
type OverviewWarmupJob struct {
	Cache   VersionBumper
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// Handle bumps the version. Errors are logged, never retried.
func (j *OverviewWarmupJob) Handle(ctx context.Context, _ *asynq.Task) error {
	tracker := metricsOrDefault(j.Metrics).Track(TaskOverviewWarmup)
	version, err := j.Cache.Bump(ctx)
	if err = tracker.End(err); err != nil {
		jobLogger(j.Logger, TaskOverviewWarmup).Warn("overview warmup failed", slog.Any("error", err))
		return nil
	}
	jobLogger(j.Logger, TaskOverviewWarmup).Debug("overview cache bumped", slog.Int64("version", version))
	return nil
}
