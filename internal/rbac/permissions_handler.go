package rbac

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foliohq/folio/internal/platform/httpx"
	"github.com/foliohq/folio/internal/shared"
)

// PermissionsHandler serves the caller's own grant set. The console loads
// this once after login and re-fetches it to observe grant changes.
type PermissionsHandler struct {
	logger  *slog.Logger
	service *Service
}

// NewPermissionsHandler builds a PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, service *Service) *PermissionsHandler {
	return &PermissionsHandler{logger: logger, service: service}
}

// MountRoutes registers the who-am-I permission routes. Mount under the
// users subtree; the full path is /api/users/me/permissions.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/me/permissions", h.myPermissions)
}

type roleName struct {
	Name string `json:"name"`
}

type myPermissionsResponse struct {
	Permissions   []string   `json:"permissions"`
	Roles         []roleName `json:"roles"`
	IsSystemAdmin bool       `json:"is_systemadmin"`
}

// myPermissions answers GET /api/users/me/permissions. Failures return an
// error status and no partial grant set, so the caller empties its permission
// state rather than keeping a stale one.
func (h *PermissionsHandler) myPermissions(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || strings.TrimSpace(sess.User()) == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	userID, err := strconv.ParseInt(strings.TrimSpace(sess.User()), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	grants, err := h.service.GrantsForUser(r.Context(), userID)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("load grants", slog.Int64("user", userID), slog.Any("error", err))
		}
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	resp := myPermissionsResponse{
		Permissions:   grants.Permissions,
		IsSystemAdmin: grants.SystemAdmin,
		Roles:         make([]roleName, 0, len(grants.Roles)),
	}
	if resp.Permissions == nil {
		resp.Permissions = []string{}
	}
	for _, role := range grants.Roles {
		resp.Roles = append(resp.Roles, roleName{Name: role.Name})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
