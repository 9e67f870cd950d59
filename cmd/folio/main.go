package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foliohq/folio/internal/app"
	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/auth"
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/categories"
	"github.com/foliohq/folio/internal/catalog/categorytypes"
	"github.com/foliohq/folio/internal/catalog/portfolios"
	"github.com/foliohq/folio/internal/catalog/projects"
	"github.com/foliohq/folio/internal/catalog/sections"
	"github.com/foliohq/folio/internal/catalog/skills"
	"github.com/foliohq/folio/internal/media"
	"github.com/foliohq/folio/internal/observability"
	"github.com/foliohq/folio/internal/platform/cache"
	"github.com/foliohq/folio/internal/platform/db"
	"github.com/foliohq/folio/internal/rbac"
	"github.com/foliohq/folio/internal/shared"
	"github.com/foliohq/folio/internal/users"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "folio_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.New()

	rbacRepo := rbac.NewRepository(pool)
	rbacService := rbac.NewService(rbacRepo)
	snapshots := authz.NewSnapshotStore(rbacService, redisClient, cfg.SnapshotTTL, logger)
	evaluator := authz.NewEvaluator(shared.AccessRegistry())

	auditRepo := audit.NewRepository(pool)
	auditService := audit.NewService(logger, auditRepo)

	gate := rbac.Middleware{
		Store:     snapshots,
		Evaluator: evaluator,
		Logger:    logger,
		Audit:     auditService,
		Denials:   metrics.Denials,
	}

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, snapshots)
	usersHandler := users.NewHandler(logger, usersService, gate)

	sessionsRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(logger, usersService, sessionsRepo, sessionManager, csrfManager, snapshots, auditService)

	permissionsHandler := rbac.NewPermissionsHandler(logger, rbacService)
	rolesHandler := rbac.NewRolesHandler(logger, rbacService, gate)

	categoryTypesService := categorytypes.NewService(categorytypes.NewRepository(pool))
	categoryTypesHandler := categorytypes.NewHandler(logger, categoryTypesService, evaluator, gate)

	categoriesService := categories.NewService(categories.NewRepository(pool))
	categoriesHandler := categories.NewHandler(logger, categoriesService, evaluator, gate)

	skillsService := skills.NewService(skills.NewRepository(pool))
	skillsHandler := skills.NewHandler(logger, skillsService, evaluator, gate)

	sectionsService := sections.NewService(sections.NewRepository(pool))
	sectionsHandler := sections.NewHandler(logger, sectionsService, evaluator, gate)

	projectsService := projects.NewService(projects.NewRepository(pool))
	projectsHandler := projects.NewHandler(logger, projectsService, evaluator, gate)

	portfoliosService := portfolios.NewService(portfolios.NewRepository(pool))
	portfoliosHandler := portfolios.NewHandler(logger, portfoliosService, evaluator, gate)

	mediaService := media.NewService(logger, media.NewRepository(pool), cfg.MediaDir, cfg.StaticBaseURL())
	mediaHandler := media.NewHandler(logger, mediaService, gate)

	auditHandler := audit.NewHandler(logger, auditService, gate)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Metrics:        metrics,
		AuditService:   auditService,

		AuthHandler:          authHandler,
		PermissionsHandler:   permissionsHandler,
		RolesHandler:         rolesHandler,
		UsersHandler:         usersHandler,
		CategoryTypesHandler: categoryTypesHandler,
		CategoriesHandler:    categoriesHandler,
		SkillsHandler:        skillsHandler,
		SectionsHandler:      sectionsHandler,
		ProjectsHandler:      projectsHandler,
		PortfoliosHandler:    portfoliosHandler,
		MediaHandler:         mediaHandler,
		AuditHandler:         auditHandler,
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
