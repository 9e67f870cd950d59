package rbac_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/rbac"
	"github.com/foliohq/folio/internal/shared"
)

type fakeGrantSource struct {
	grants map[int64]authz.Grants
	err    error
}

func (f *fakeGrantSource) Grants(ctx context.Context, userID int64) (authz.Grants, error) {
	if f.err != nil {
		return authz.Grants{}, f.err
	}
	return f.grants[userID], nil
}

type denialRecord struct {
	actor  string
	detail string
}

type fakeAudit struct {
	denials []denialRecord
}

func (f *fakeAudit) RecordDenial(ctx context.Context, actor, detail string) {
	f.denials = append(f.denials, denialRecord{actor: actor, detail: detail})
}

func newGateMiddleware(t *testing.T, source authz.GrantSource, audit rbac.EventRecorder) rbac.Middleware {
	t.Helper()
	store := authz.NewSnapshotStore(source, nil, time.Minute, nil)
	return rbac.Middleware{
		Store:     store,
		Evaluator: authz.NewEvaluator(shared.AccessRegistry()),
		Audit:     audit,
	}
}

func requestWithSessionUser(t *testing.T, user string) *http.Request {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	sess, err := manager.Load(context.Background(), req)
	require.NoError(t, err)
	if user != "" {
		sess.SetUser(user)
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireModuleAllowed(t *testing.T) {
	source := &fakeGrantSource{grants: map[int64]authz.Grants{
		42: {Permissions: []string{"VIEW_PROJECTS"}},
	}}
	m := newGateMiddleware(t, source, nil)

	var called bool
	handler := m.RequireModule(shared.ModuleProjects)(okHandler(&called))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSessionUser(t, "42"))

	require.True(t, called)
	require.Equal(t, http.StatusOK, res.Code)
}

func TestRequireModuleDenied(t *testing.T) {
	source := &fakeGrantSource{grants: map[int64]authz.Grants{
		42: {Permissions: []string{"VIEW_SKILLS"}},
	}}
	audit := &fakeAudit{}
	m := newGateMiddleware(t, source, audit)

	var called bool
	handler := m.RequireModule(shared.ModuleProjects)(okHandler(&called))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSessionUser(t, "42"))

	require.False(t, called)
	require.Equal(t, http.StatusForbidden, res.Code)

	var problem map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &problem))
	require.Contains(t, problem["detail"], "You don't have permission to view Projects")

	require.Len(t, audit.denials, 1)
	require.Equal(t, "42", audit.denials[0].actor)
	require.Contains(t, audit.denials[0].detail, "projects")
}

func TestRequireModuleUnauthenticated(t *testing.T) {
	m := newGateMiddleware(t, &fakeGrantSource{}, nil)

	var called bool
	handler := m.RequireModule(shared.ModuleProjects)(okHandler(&called))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSessionUser(t, ""))

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, res.Code)

	// Logged-out users get no permission chrome, just the bare status.
	var problem map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &problem))
	_, hasDetail := problem["detail"]
	require.False(t, hasDetail)
}

func TestRequireModuleResolutionFailureIsNotDenial(t *testing.T) {
	audit := &fakeAudit{}
	m := newGateMiddleware(t, &fakeGrantSource{err: errors.New("db down")}, audit)

	var called bool
	handler := m.RequireModule(shared.ModuleProjects)(okHandler(&called))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSessionUser(t, "42"))

	require.False(t, called)
	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.Empty(t, audit.denials)
}

func TestRequireOperationBuildsConventionalName(t *testing.T) {
	source := &fakeGrantSource{grants: map[int64]authz.Grants{
		42: {Permissions: []string{"EDIT_PROJECTS"}},
	}}
	m := newGateMiddleware(t, source, nil)

	var called bool
	edit := m.RequireOperation(authz.OpEdit, shared.ModuleProjects)(okHandler(&called))
	res := httptest.NewRecorder()
	edit.ServeHTTP(res, requestWithSessionUser(t, "42"))
	require.Equal(t, http.StatusOK, res.Code)

	called = false
	del := m.RequireOperation(authz.OpDelete, shared.ModuleProjects)(okHandler(&called))
	res = httptest.NewRecorder()
	del.ServeHTTP(res, requestWithSessionUser(t, "42"))
	require.Equal(t, http.StatusForbidden, res.Code)
	require.False(t, called)
}

func TestManageAliasPassesOperationGates(t *testing.T) {
	source := &fakeGrantSource{grants: map[int64]authz.Grants{
		42: {Permissions: []string{"MANAGE_CATEGORY_TYPES"}},
	}}
	m := newGateMiddleware(t, source, nil)

	for _, op := range []string{authz.OpView, authz.OpCreate, authz.OpEdit, authz.OpDelete} {
		var called bool
		handler := m.RequireOperation(op, shared.ModuleCategoryTypes)(okHandler(&called))
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, requestWithSessionUser(t, "42"))
		require.Equal(t, http.StatusOK, res.Code, op)
	}
}

func TestSystemAdminPassesEveryGate(t *testing.T) {
	source := &fakeGrantSource{grants: map[int64]authz.Grants{
		1: {SystemAdmin: true},
	}}
	m := newGateMiddleware(t, source, nil)

	var called bool
	handler := m.RequireAll("VIEW_PROJECTS", "DELETE_USERS", "MANAGE_SECURITY")(okHandler(&called))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSessionUser(t, "1"))
	require.Equal(t, http.StatusOK, res.Code)
	require.True(t, called)
}

func TestGateStashesSnapshotInContext(t *testing.T) {
	source := &fakeGrantSource{grants: map[int64]authz.Grants{
		42: {Permissions: []string{"VIEW_PROJECTS"}},
	}}
	m := newGateMiddleware(t, source, nil)

	var snap authz.Snapshot
	handler := m.RequireModule(shared.ModuleProjects)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap = rbac.SnapshotFromContext(r.Context())
	}))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithSessionUser(t, "42"))

	require.True(t, snap.Authenticated())
	require.Equal(t, []string{"VIEW_PROJECTS"}, snap.Permissions())
}
