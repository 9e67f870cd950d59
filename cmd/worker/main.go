package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/foliohq/folio/internal/app"
	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/auth"
	"github.com/foliohq/folio/internal/media"
	"github.com/foliohq/folio/internal/platform/db"
	"github.com/foliohq/folio/jobs"
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	auditService := audit.NewService(logger, audit.NewRepository(pool))
	mediaService := media.NewService(logger, media.NewRepository(pool), cfg.MediaDir, cfg.StaticBaseURL())
	sessionsRepo := auth.NewRepository(pool)

	scanJob := jobs.NewSecurityScanJob(auditService, logger)
	mediaJob := jobs.NewMediaCleanupJob(mediaService, logger)
	sessionJob := jobs.NewSessionCleanupJob(sessionsRepo, logger)

	scanTask, err := jobs.NewSecurityScanTask(jobs.SecurityScanPayload{WindowMinutes: 15, Threshold: 10})
	if err != nil {
		logger.Error("build security scan task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSecurityScan, Handler: scanJob.Handle},
			{Type: jobs.TaskMediaCleanup, Handler: mediaJob.Handle},
			{Type: jobs.TaskSessionCleanup, Handler: sessionJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "*/15 * * * *", Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "30 3 * * *", Task: jobs.NewMediaCleanupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 4 * * *", Task: jobs.NewSessionCleanupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
