package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/auth"
	"github.com/foliohq/folio/internal/catalog/categories"
	"github.com/foliohq/folio/internal/catalog/categorytypes"
	"github.com/foliohq/folio/internal/catalog/portfolios"
	"github.com/foliohq/folio/internal/catalog/projects"
	"github.com/foliohq/folio/internal/catalog/sections"
	"github.com/foliohq/folio/internal/catalog/skills"
	"github.com/foliohq/folio/internal/media"
	"github.com/foliohq/folio/internal/observability"
	"github.com/foliohq/folio/internal/rbac"
	"github.com/foliohq/folio/internal/shared"
	"github.com/foliohq/folio/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	AuditService *audit.Service

	AuthHandler          *auth.Handler
	PermissionsHandler   *rbac.PermissionsHandler
	RolesHandler         *rbac.RolesHandler
	UsersHandler         *users.Handler
	CategoryTypesHandler *categorytypes.Handler
	CategoriesHandler    *categories.Handler
	SkillsHandler        *skills.Handler
	SectionsHandler      *sections.Handler
	ProjectsHandler      *projects.Handler
	PortfoliosHandler    *portfolios.Handler
	MediaHandler         *media.Handler
	AuditHandler         *audit.Handler
}

// NewRouter constructs the chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api", func(api chi.Router) {
		if params.AuditService != nil {
			api.Use(audit.Middleware(params.AuditService))
		}
		api.Route("/auth", params.AuthHandler.MountRoutes)
		api.Route("/users", func(usersRouter chi.Router) {
			params.PermissionsHandler.MountRoutes(usersRouter)
			params.UsersHandler.MountRoutes(usersRouter)
		})
		api.Route("/roles", params.RolesHandler.MountRoutes)
		api.Route("/category-types", params.CategoryTypesHandler.MountRoutes)
		api.Route("/categories", params.CategoriesHandler.MountRoutes)
		api.Route("/skills", params.SkillsHandler.MountRoutes)
		api.Route("/sections", params.SectionsHandler.MountRoutes)
		api.Route("/projects", params.ProjectsHandler.MountRoutes)
		api.Route("/portfolios", params.PortfoliosHandler.MountRoutes)
		api.Route("/media", params.MediaHandler.MountRoutes)
		api.Route("/security", params.AuditHandler.MountRoutes)
	})

	if params.Config != nil {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(params.Config.MediaDir)))
		r.Get("/static/*", fileServer.ServeHTTP)
	}

	return r
}
