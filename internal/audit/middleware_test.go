package audit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newAuditedRouter(svc *Service) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Use(Middleware(svc))
		api.Get("/projects", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		api.Post("/projects", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		api.Delete("/category-types/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		api.Post("/projects/bulk-delete", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		api.Post("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		api.Post("/skills", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})
	})
	return r
}

func TestMiddlewareRecordsMutations(t *testing.T) {
	svc, repo := newTestService()
	router := newAuditedRouter(svc)

	do := func(method, path string) {
		t.Helper()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	}

	do(http.MethodPost, "/api/projects")
	do(http.MethodDelete, "/api/category-types/42")
	do(http.MethodPost, "/api/projects/bulk-delete")

	require.Len(t, repo.events, 3)
	require.Equal(t, "projects.create", repo.events[0].Action)
	require.Equal(t, "category_types.delete", repo.events[1].Action)
	require.Equal(t, int64(42), repo.events[1].EntityID)
	require.Equal(t, "projects.bulk_delete", repo.events[2].Action)
}

func TestMiddlewareSkipsReadsFailuresAndAuth(t *testing.T) {
	svc, repo := newTestService()
	router := newAuditedRouter(svc)

	do := func(method, path string) {
		t.Helper()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	}

	do(http.MethodGet, "/api/projects")
	do(http.MethodPost, "/api/skills")      // handler responds 409
	do(http.MethodPost, "/api/auth/logout") // auth records its own events

	require.Empty(t, repo.events)
}
