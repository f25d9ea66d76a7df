package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/platehub/backoffice/internal/app"
	jobmetrics "github.com/platehub/backoffice/internal/jobs"
	"github.com/platehub/backoffice/internal/notifications"
	"github.com/platehub/backoffice/internal/overview"
	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/xano"
	"github.com/platehub/backoffice/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.Connect(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	api, err := xano.New(cfg.XanoBaseURL, xano.WithTimeout(cfg.XanoTimeout), xano.WithLogger(logger))
	if err != nil {
		logger.Error("init api client", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.ServiceToken == "" {
		logger.Info("XANO_SERVICE_TOKEN not set, banner refresh runs anonymously")
	}

	metrics, metricsHandler := jobmetrics.NewServed()
	if cfg.WorkerMetricsAddr != "" {
		router := chi.NewRouter()
		router.Method(http.MethodGet, "/metrics", metricsHandler)
		metricsServer := &http.Server{Addr: cfg.WorkerMetricsAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("serving worker metrics", slog.String("addr", cfg.WorkerMetricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("worker metrics server", slog.Any("error", err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}
	bannerJob := &jobs.BannerRefreshJob{
		Service: notifications.NewService(api),
		Banners: notifications.NewBannerStore(cache.NewVersioned(redisClient, "notifications", 0), 3*cfg.BannerRefreshInterval, logger),
		Token:   cfg.ServiceToken,
		Logger:  logger,
		Metrics: metrics,
	}
	warmupJob := &jobs.OverviewWarmupJob{
		Cache:   cache.NewVersioned(redisClient, overview.CacheNamespace, cfg.OverviewCacheTTL),
		Logger:  logger,
		Metrics: metrics,
	}

	redisOpts, err := cache.Options(cfg.RedisAddr)
	if err != nil {
		logger.Error("parse redis address", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: jobs.RedisOpt(redisOpts),
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskBannerRefresh, Handler: bannerJob.Handle},
			{Type: jobs.TaskOverviewWarmup, Handler: warmupJob.Handle},
		},
		Schedules: []jobs.Schedule{
			{Spec: jobs.Every(cfg.BannerRefreshInterval), Task: jobs.NewBannerRefreshTask(cfg.BannerRefreshInterval)},
			{Spec: jobs.Every(cfg.OverviewWarmInterval), Task: jobs.NewOverviewWarmupTask(cfg.OverviewWarmInterval)},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("starting worker",
		slog.Duration("banner_interval", cfg.BannerRefreshInterval),
		slog.Duration("overview_interval", cfg.OverviewWarmInterval),
	)
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
