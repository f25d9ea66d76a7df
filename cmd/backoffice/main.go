package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/platehub/backoffice/internal/app"
	"github.com/platehub/backoffice/internal/audit"
	"github.com/platehub/backoffice/internal/auth"
	"github.com/platehub/backoffice/internal/branches"
	"github.com/platehub/backoffice/internal/menu"
	"github.com/platehub/backoffice/internal/menu/wizard"
	"github.com/platehub/backoffice/internal/notifications"
	"github.com/platehub/backoffice/internal/observability"
	"github.com/platehub/backoffice/internal/orders"
	"github.com/platehub/backoffice/internal/overview"
	"github.com/platehub/backoffice/internal/platform/cache"
	"github.com/platehub/backoffice/internal/platform/gotenberg"
	"github.com/platehub/backoffice/internal/reports"
	"github.com/platehub/backoffice/internal/settings"
	"github.com/platehub/backoffice/internal/shared"
	"github.com/platehub/backoffice/internal/team"
	"github.com/platehub/backoffice/internal/view"
	"github.com/platehub/backoffice/internal/xano"
	"github.com/platehub/backoffice/jobs"
)

const branchCacheTTL = 10 * time.Minute

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
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

	sessionManager := shared.NewSessionManager(redisClient, "backoffice_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()

	api, err := xano.New(cfg.XanoBaseURL,
		xano.WithTimeout(cfg.XanoTimeout),
		xano.WithLogger(logger),
		xano.WithRecorder(metrics),
	)
	if err != nil {
		logger.Error("init api client", slog.Any("error", err))
		os.Exit(1)
	}

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("load templates", slog.Any("error", err))
		os.Exit(1)
	}

	settingsService := settings.NewService(api)
	branchService := branches.NewService(api, cache.NewVersioned(redisClient, "branches", branchCacheTTL))
	teamService := team.NewService(api)
	menuService := menu.NewService(api)
	overviewCache := cache.NewVersioned(redisClient, overview.CacheNamespace, cfg.OverviewCacheTTL)
	overviewService := overview.NewService(api, overviewCache)
	orderService := orders.NewService(api, overviewCache)
	reportService := reports.NewService(api)
	notificationService := notifications.NewService(api)
	banners := notifications.NewBannerStore(
		cache.NewVersioned(redisClient, "notifications", 0),
		3*cfg.BannerRefreshInterval,
		logger,
	)
	auditService := audit.NewService(api)

	presenter := &view.Presenter{
		Templates: templates,
		CSRF:      csrfManager,
		Sessions:  sessionManager,
		Logger:    logger,
		Layouts: &app.LayoutProvider{
			Banners:  banners,
			Branches: branchService,
			Logger:   logger,
		},
	}

	pdf := gotenberg.NewClient(cfg.GotenbergURL, 0)
	if err := pdf.Ping(ctx); err != nil {
		logger.Warn("gotenberg unreachable, pdf export will fail", slog.Any("error", err))
	}

	redisOpts, err := cache.Options(cfg.RedisAddr)
	if err != nil {
		logger.Error("parse redis address", slog.Any("error", err))
		os.Exit(1)
	}
	queueOpts := jobs.RedisOpt(redisOpts)
	inspector := asynq.NewInspector(queueOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	queue := jobs.NewClient(queueOpts)
	if err := queue.Enqueue(ctx, jobs.NewBannerRefreshTask(cfg.BannerRefreshInterval)); err != nil {
		logger.Warn("enqueue banner refresh", slog.Any("error", err))
	}
	if err := queue.Close(); err != nil {
		logger.Warn("queue client close", slog.Any("error", err))
	}

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		SessionManager:       sessionManager,
		CSRFManager:          csrfManager,
		Metrics:              metrics,
		AuthHandler:          auth.NewHandler(logger, auth.NewService(api, settingsService), presenter, sessionManager),
		OverviewHandler:      overview.NewHandler(logger, overviewService, orderService, presenter),
		MenuHandler:          menu.NewHandler(logger, menuService, presenter),
		ExtrasHandler:        wizard.NewHandler(logger, menuService, presenter),
		OrdersHandler:        orders.NewHandler(logger, orderService, presenter),
		ReportsHandler:       reports.NewHandler(logger, reportService, pdf, presenter),
		TeamHandler:          team.NewHandler(logger, teamService, branchService, presenter),
		BranchesHandler:      branches.NewHandler(logger, branchService, presenter),
		SettingsHandler:      settings.NewHandler(logger, settingsService, presenter),
		NotificationsHandler: notifications.NewHandler(logger, notificationService, banners, presenter),
		AuditHandler:         audit.NewHandler(logger, auditService, presenter),
		JobHandler:           jobs.NewHandler(inspector, logger),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
