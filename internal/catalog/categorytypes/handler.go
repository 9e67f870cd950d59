package categorytypes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	"github.com/foliohq/folio/internal/platform/httpx"
	"github.com/foliohq/folio/internal/rbac"
	internalShared "github.com/foliohq/folio/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	evaluator *authz.Evaluator
	rbac      rbac.Middleware
	validate  *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, evaluator *authz.Evaluator, rbac rbac.Middleware) *Handler {
	return &Handler{logger: logger, service: service, evaluator: evaluator, rbac: rbac, validate: validator.New()}
}

// MountRoutes registers category type routes.
func (h *Handler) MountRoutes(r chi.Router) {
	module := internalShared.ModuleCategoryTypes
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireModule(module))
		r.Get("/view", h.view)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireOperation(authz.OpView, module))
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireOperation(authz.OpCreate, module))
		r.Post("/", h.create)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireOperation(authz.OpEdit, module))
		r.Put("/{id}", h.update)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireOperation(authz.OpDelete, module))
		r.Delete("/{id}", h.delete)
	})
}

type categoryTypeForm struct {
	Code string `json:"code" validate:"required,max=50"`
	Name string `json:"name" validate:"required,max=200"`
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	snap := rbac.SnapshotFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, shared.BuildView(h.evaluator, snap, ViewConfig()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list category types", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []CategoryType{}
	}
	pg := internalShared.NewPagination(filters.Page, filters.Limit, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[CategoryType]{Items: items, Total: total, Page: pg.Page, TotalPages: pg.TotalPages})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid category type id")
		return
	}
	ct, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ct)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form categoryTypeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), CategoryType{Code: form.Code, Name: form.Name})
	if err != nil {
		h.logger.Error("create category type", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid category type id")
		return
	}
	var form categoryTypeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, CategoryType{Code: form.Code, Name: form.Name}); err != nil {
		h.logger.Error("update category type", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid category type id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete category type", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
