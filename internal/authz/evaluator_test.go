package authz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/authz"
)

func testRegistry() *authz.Registry {
	r := authz.NewRegistry()
	r.RegisterModule("projects", "Projects",
		"VIEW_PROJECTS", "CREATE_PROJECTS", "EDIT_PROJECTS", "DELETE_PROJECTS", "MANAGE_PROJECTS")
	r.RegisterModule("category_types", "Category Types",
		"VIEW_CATEGORY_TYPES", "CREATE_CATEGORY_TYPES", "EDIT_CATEGORY_TYPES", "DELETE_CATEGORY_TYPES", "MANAGE_CATEGORY_TYPES")
	r.RegisterAlias("MANAGE_PROJECTS",
		"VIEW_PROJECTS", "CREATE_PROJECTS", "EDIT_PROJECTS", "DELETE_PROJECTS")
	r.RegisterAlias("MANAGE_CATEGORY_TYPES",
		"VIEW_CATEGORY_TYPES", "CREATE_CATEGORY_TYPES", "EDIT_CATEGORY_TYPES", "DELETE_CATEGORY_TYPES")
	return r
}

func TestHasPermissionDirect(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot([]string{"VIEW_PROJECTS"}, nil, false)

	require.True(t, ev.HasPermission(snap, "VIEW_PROJECTS"))
	require.True(t, ev.HasPermission(snap, "view_projects"), "matching is case-insensitive")
	require.False(t, ev.HasPermission(snap, "EDIT_PROJECTS"))
	require.False(t, ev.HasPermission(snap, ""))
}

func TestHasPermissionManageAliasExpansion(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot([]string{"MANAGE_PROJECTS"}, nil, false)

	// The alias grants every permission in its expansion list, and only those.
	for _, p := range []string{"VIEW_PROJECTS", "CREATE_PROJECTS", "EDIT_PROJECTS", "DELETE_PROJECTS"} {
		require.True(t, ev.HasPermission(snap, p), p)
	}
	require.False(t, ev.HasPermission(snap, "VIEW_CATEGORY_TYPES"))
	require.False(t, ev.HasPermission(snap, "DELETE_CATEGORY_TYPES"))
}

func TestHasPermissionUnauthenticated(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.Anonymous()

	require.False(t, ev.HasPermission(snap, "VIEW_PROJECTS"))
	require.False(t, ev.CanAccessModule(snap, "projects"))
	require.False(t, ev.CanPerform(snap, authz.OpView, "projects"))
}

func TestSystemAdminShortCircuitsEverything(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot(nil, nil, true)

	require.True(t, ev.HasPermission(snap, "VIEW_PROJECTS"))
	require.True(t, ev.HasAny(snap, "NO_SUCH_PERMISSION"))
	require.True(t, ev.HasAll(snap, "NO_SUCH_PERMISSION", "ANOTHER_ONE"))
	require.True(t, ev.CanAccessModule(snap, "projects"))
	require.True(t, ev.CanPerform(snap, authz.OpDelete, "category_types"))
}

func TestQuantifiers(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot([]string{"VIEW_PROJECTS", "EDIT_PROJECTS"}, nil, false)

	require.True(t, ev.HasAny(snap, "DELETE_PROJECTS", "VIEW_PROJECTS"))
	require.False(t, ev.HasAny(snap, "DELETE_PROJECTS", "CREATE_PROJECTS"))
	require.True(t, ev.HasAll(snap, "VIEW_PROJECTS", "EDIT_PROJECTS"))
	require.False(t, ev.HasAll(snap, "VIEW_PROJECTS", "DELETE_PROJECTS"))
	require.False(t, ev.HasAny(snap), "there-exists over no names is false")
	require.True(t, ev.HasAll(snap), "for-all over no names is true")
}

func TestEmptyAnyOfDeniesNonAdmins(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())

	snap := authz.NewSnapshot([]string{"VIEW_PROJECTS"}, nil, false)
	require.False(t, ev.HasAny(snap), "a rule declared without permissions must not grant")

	admin := authz.NewSnapshot(nil, nil, true)
	require.True(t, ev.HasAny(admin))

	grid := ev.GridColumns(snap, []string{"code", "secret", "actions"}, map[string]authz.ColumnRule{
		"secret": {AnyOf: nil, Label: "Secret"},
	})
	require.Equal(t, []string{"code"}, grid.Allowed)
	require.Contains(t, grid.Denied, "secret")
	require.False(t, grid.ActionsVisible)
}

func TestCanAccessModuleMatchesAnyOfRegisteredList(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())

	cases := []struct {
		perms []string
		want  bool
	}{
		{nil, false},
		{[]string{"VIEW_PROJECTS"}, true},
		{[]string{"DELETE_PROJECTS"}, true},
		{[]string{"MANAGE_PROJECTS"}, true},
		{[]string{"VIEW_CATEGORY_TYPES"}, false},
	}
	for _, tc := range cases {
		snap := authz.NewSnapshot(tc.perms, nil, false)
		require.Equal(t, tc.want, ev.CanAccessModule(snap, "projects"), "%v", tc.perms)
		perms, ok := ev.Registry().ModulePermissions("projects")
		require.True(t, ok)
		require.Equal(t, tc.want, ev.HasAny(snap, perms...), "module access must equal any-of over the registered list")
	}
}

func TestUnregisteredModuleAlwaysDenied(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	admin := authz.NewSnapshot([]string{"MANAGE_PROJECTS", "MANAGE_CATEGORY_TYPES"}, nil, false)

	require.False(t, ev.CanAccessModule(admin, "billing"))
	require.False(t, ev.CanAccessModule(authz.Anonymous(), "billing"))
}

func TestPermissionName(t *testing.T) {
	require.Equal(t, "EDIT_PROJECTS", authz.PermissionName("edit", "projects"))
	require.Equal(t, "VIEW_CATEGORY_TYPES", authz.PermissionName("view", "category_types"))
	require.Equal(t, "", authz.PermissionName("", "projects"))
	require.Equal(t, "", authz.PermissionName("view", ""))
}

func TestModuleDeniedMessage(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	require.Equal(t, "You don't have permission to view Projects.", ev.ModuleDeniedMessage("projects"))
	require.Equal(t, "You don't have permission to view billing.", ev.ModuleDeniedMessage("billing"))
}
