package rbac

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/platform/httpx"
	"github.com/foliohq/folio/internal/shared"
)

// EventRecorder receives security events emitted by the gates. A nil recorder
// disables recording.
type EventRecorder interface {
	RecordDenial(ctx context.Context, actor, detail string)
}

// Middleware wires the declarative gates for HTTP handlers. A request passes
// through exactly one of four outcomes: unauthenticated (401, no denial
// detail so logged-out users never see permission chrome), denied (403 with
// the evaluator's message), resolution failure (500, fail-closed but never
// reported as a denial), or allowed. Verdicts are computed per request from
// the snapshot store, so a revocation takes effect on the next request
// without any invalidation hooks here.
type Middleware struct {
	Store     *authz.SnapshotStore
	Evaluator *authz.Evaluator
	Logger    *slog.Logger
	Audit     EventRecorder
	Denials   prometheus.Counter
}

type snapshotContextKey struct{}

// ContextWithSnapshot stores a resolved snapshot in the context.
func ContextWithSnapshot(ctx context.Context, snap authz.Snapshot) context.Context {
	return context.WithValue(ctx, snapshotContextKey{}, snap)
}

// SnapshotFromContext returns the snapshot a gate stashed for this request.
// Handlers behind a gate use this instead of resolving again.
func SnapshotFromContext(ctx context.Context) authz.Snapshot {
	snap, _ := ctx.Value(snapshotContextKey{}).(authz.Snapshot)
	return snap
}

// RequireModule admits requests that can access the module at all.
func (m Middleware) RequireModule(moduleKey string) func(http.Handler) http.Handler {
	return m.gate(moduleKey, func(snap authz.Snapshot) bool {
		return m.Evaluator.CanAccessModule(snap, moduleKey)
	})
}

// RequireOperation admits requests permitted to perform the conventionally
// named operation on the module, e.g. ("edit", "projects") -> EDIT_PROJECTS.
func (m Middleware) RequireOperation(operation, moduleKey string) func(http.Handler) http.Handler {
	return m.gate(moduleKey, func(snap authz.Snapshot) bool {
		return m.Evaluator.CanPerform(snap, operation, moduleKey)
	})
}

// RequirePermission admits requests holding the named permission.
func (m Middleware) RequirePermission(name string) func(http.Handler) http.Handler {
	return m.gate("", func(snap authz.Snapshot) bool {
		return m.Evaluator.HasPermission(snap, name)
	})
}

// RequireAny admits requests holding at least one of the named permissions.
func (m Middleware) RequireAny(names ...string) func(http.Handler) http.Handler {
	return m.gate("", func(snap authz.Snapshot) bool {
		return m.Evaluator.HasAny(snap, names...)
	})
}

// RequireAll admits requests holding every named permission.
func (m Middleware) RequireAll(names ...string) func(http.Handler) http.Handler {
	return m.gate("", func(snap authz.Snapshot) bool {
		return m.Evaluator.HasAll(snap, names...)
	})
}

func (m Middleware) gate(moduleKey string, allowed func(authz.Snapshot) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := m.currentUserID(r)
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "")
				return
			}
			snap, err := m.Store.Snapshot(r.Context(), userID)
			if err != nil {
				if m.Logger != nil {
					m.Logger.Error("resolve snapshot", slog.Int64("user", userID), slog.Any("error", err))
				}
				httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
				return
			}
			if !allowed(snap) {
				m.recordDenial(r, userID, moduleKey)
				message := authz.GenericDeniedMessage
				if moduleKey != "" {
					message = m.Evaluator.ModuleDeniedMessage(moduleKey)
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", message)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithSnapshot(r.Context(), snap)))
		})
	}
}

func (m Middleware) recordDenial(r *http.Request, userID int64, moduleKey string) {
	if m.Denials != nil {
		m.Denials.Inc()
	}
	if m.Audit != nil {
		detail := r.Method + " " + r.URL.Path
		if moduleKey != "" {
			detail += " (" + moduleKey + ")"
		}
		m.Audit.RecordDenial(r.Context(), strconv.FormatInt(userID, 10), detail)
	}
}

func (m Middleware) currentUserID(r *http.Request) (int64, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("parse session user id", slog.String("value", raw))
		}
		return 0, false
	}
	return id, true
}
