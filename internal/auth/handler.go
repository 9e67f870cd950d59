package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/foliohq/folio/internal/audit"
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/platform/httpx"
	"github.com/foliohq/folio/internal/shared"
	"github.com/foliohq/folio/internal/users"
)

// loginRateLimit bounds login attempts per client IP.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

type Handler struct {
	logger    *slog.Logger
	users     *users.Service
	sessions  Repository
	manager   *shared.SessionManager
	csrf      *shared.CSRFManager
	snapshots *authz.SnapshotStore
	audit     *audit.Service
	validate  *validator.Validate
}

func NewHandler(
	logger *slog.Logger,
	userService *users.Service,
	sessions Repository,
	manager *shared.SessionManager,
	csrf *shared.CSRFManager,
	snapshots *authz.SnapshotStore,
	auditService *audit.Service,
) *Handler {
	return &Handler{
		logger:    logger,
		users:     userService,
		sessions:  sessions,
		manager:   manager,
		csrf:      csrf,
		snapshots: snapshots,
		audit:     auditService,
		validate:  validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(loginRateLimit, loginRateWindow))
		r.Post("/login", h.login)
	})
	r.Post("/logout", h.logout)
	r.Get("/session", h.session)
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID        int64  `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	IsSystemAdmin bool   `json:"is_systemadmin"`
	CSRFToken     string `json:"csrf_token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid request body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	u, err := h.users.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			h.audit.Record(r.Context(), audit.Event{
				Actor:  form.Email,
				Action: audit.ActionLoginFailure,
				Detail: "invalid credentials",
			})
			httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "invalid email or password")
			return
		}
		h.logger.Error("login", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("login without session middleware")
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	sess.SetUser(strconv.FormatInt(u.ID, 10))

	if err := h.sessions.CreateSession(r.Context(), sess.ID, u.ID, time.Now().Add(h.manager.TTL())); err != nil {
		h.logger.Error("persist session row", slog.Any("error", err))
	}

	// A fresh login starts from current grants, not a cached snapshot.
	h.snapshots.Invalidate(r.Context(), u.ID)

	token, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Error("issue csrf token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	h.audit.Record(r.Context(), audit.Event{
		Actor:  strconv.FormatInt(u.ID, 10),
		Action: audit.ActionLoginSuccess,
	})
	h.logger.Info("login", slog.Int64("user_id", u.ID))

	httpx.JSON(w, http.StatusOK, sessionResponse{
		UserID:        u.ID,
		Email:         u.Email,
		Name:          u.Name,
		IsSystemAdmin: u.IsSystemAdmin,
		CSRFToken:     token,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	userID, _ := strconv.ParseInt(sess.User(), 10, 64)

	if err := h.sessions.DeleteSession(r.Context(), sess.ID); err != nil {
		h.logger.Error("delete session row", slog.Any("error", err))
	}
	h.manager.Destroy(sess)
	if userID > 0 {
		h.snapshots.Invalidate(r.Context(), userID)
		h.audit.Record(r.Context(), audit.Event{
			Actor:  strconv.FormatInt(userID, 10),
			Action: audit.ActionLogout,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || sess.User() == "" {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}
	userID, err := strconv.ParseInt(sess.User(), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	token, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Error("issue csrf token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, sessionResponse{
		UserID:        u.ID,
		Email:         u.Email,
		Name:          u.Name,
		IsSystemAdmin: u.IsSystemAdmin,
		CSRFToken:     token,
	})
}
