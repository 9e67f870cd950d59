package sections

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

func (h *Handler) MountRoutes(r chi.Router) {
	module := internalShared.ModuleSections
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

type translationForm struct {
	Language    string `json:"language" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type sectionForm struct {
	Code         string            `json:"code" validate:"required,max=50"`
	SortOrder    int               `json:"sort_order" validate:"gte=0"`
	Translations []translationForm `json:"translations" validate:"required,min=1,dive"`
}

func (f sectionForm) toSection() Section {
	blocks := make([]shared.Translation, 0, len(f.Translations))
	for _, t := range f.Translations {
		blocks = append(blocks, shared.Translation{Language: t.Language, Name: t.Name, Description: t.Description})
	}
	return Section{Code: f.Code, SortOrder: f.SortOrder, Translations: blocks}
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	snap := rbac.SnapshotFromContext(r.Context())
	httpx.JSON(w, http.StatusOK, shared.BuildView(h.evaluator, snap, ViewConfig()))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query())
	items, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list sections", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if items == nil {
		items = []Section{}
	}
	pg := internalShared.NewPagination(filters.Page, filters.Limit, total)
	httpx.JSON(w, http.StatusOK, httpx.ListResponse[Section]{Items: items, Total: total, Page: pg.Page, TotalPages: pg.TotalPages})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid section id")
		return
	}
	sec, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var form sectionForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), form.toSection())
	if err != nil {
		h.logger.Error("create section", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid section id")
		return
	}
	var form sectionForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Update(r.Context(), id, form.toSection()); err != nil {
		h.logger.Error("update section", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid section id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete section", slog.Any("error", err), slog.Int64("id", id))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
