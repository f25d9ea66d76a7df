package jobs

import (
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskBannerRefresh copies the broadcast banner into Redis.
	TaskBannerRefresh = "banner:refresh"
	// TaskOverviewWarmup expires cached overview figures.
	TaskOverviewWarmup = "overview:warmup"
)

// NewBannerRefreshTask builds the banner refresh task. Unique keeps a slow
// run from stacking duplicates; failures are never retried.
func NewBannerRefreshTask(interval time.Duration) *asynq.Task {
	return asynq.NewTask(TaskBannerRefresh, nil, asynq.Queue(QueueDefault), asynq.MaxRetry(0), asynq.Unique(interval))
}

// NewOverviewWarmupTask builds the overview cache expiry task.
func NewOverviewWarmupTask(interval time.Duration) *asynq.Task {
	return asynq.NewTask(TaskOverviewWarmup, nil, asynq.Queue(QueueDefault), asynq.MaxRetry(0), asynq.Unique(interval))
}

// Every renders an interval as a scheduler spec.
func Every(d time.Duration) string {
	return "@every " + d.String()
}
