package audit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/foliohq/folio/internal/shared"
)

// Middleware records an event for every successful write request under /api,
// so entity mutations land in the timeline without each handler carrying the
// audit service. Auth endpoints are skipped; they record richer events of
// their own.
func Middleware(svc *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 300 {
				return
			}
			entity, action := classify(r)
			if entity == "" || entity == "auth" {
				return
			}

			var actor string
			if sess := shared.SessionFromContext(r.Context()); sess != nil {
				actor = sess.User()
			}
			var entityID int64
			if raw := chi.URLParam(r, "id"); raw != "" {
				entityID, _ = strconv.ParseInt(raw, 10, 64)
			}
			svc.Record(r.Context(), Event{
				Actor:    actor,
				Action:   entity + "." + action,
				Entity:   entity,
				EntityID: entityID,
			})
		})
	}
}

// classify derives ("projects", "bulk_delete") from the matched route and
// method. Entity is the first path segment under /api with hyphens folded to
// underscores.
func classify(r *http.Request) (entity, action string) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "", ""
	}
	pattern := rctx.RoutePattern()
	rest, ok := strings.CutPrefix(pattern, "/api/")
	if !ok {
		return "", ""
	}
	entity, _, _ = strings.Cut(rest, "/")
	entity = strings.ReplaceAll(entity, "-", "_")

	switch {
	case strings.HasSuffix(pattern, "/bulk-delete"):
		action = "bulk_delete"
	case r.Method == http.MethodPost:
		action = "create"
	case r.Method == http.MethodDelete:
		action = "delete"
	default:
		action = "update"
	}
	return entity, action
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.written {
		w.written = true
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(data []byte) (int, error) {
	if !w.written {
		w.written = true
	}
	return w.ResponseWriter.Write(data)
}
