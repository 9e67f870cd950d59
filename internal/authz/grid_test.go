package authz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foliohq/folio/internal/authz"
)

func categoryTypeColumns() ([]string, map[string]authz.ColumnRule) {
	columns := []string{"code", "name", authz.ActionsColumn}
	rules := map[string]authz.ColumnRule{
		authz.ActionsColumn: {
			AnyOf:  []string{"EDIT_CATEGORY_TYPES", "DELETE_CATEGORY_TYPES", "MANAGE_CATEGORY_TYPES"},
			Module: "category_types",
			Label:  "Actions",
		},
	}
	return columns, rules
}

func TestGridColumnsViewerLosesActions(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot([]string{"VIEW_CATEGORY_TYPES"}, nil, false)

	columns, rules := categoryTypeColumns()
	access := ev.GridColumns(snap, columns, rules)

	require.Equal(t, []string{"code", "name"}, access.Allowed)
	require.Equal(t, []string{authz.ActionsColumn}, access.Denied)
	require.False(t, access.ActionsVisible)
	require.Contains(t, access.Notice, "Actions")
}

func TestGridColumnsManagerSeesEverything(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot([]string{"MANAGE_CATEGORY_TYPES"}, nil, false)

	columns, rules := categoryTypeColumns()
	access := ev.GridColumns(snap, columns, rules)

	require.Equal(t, []string{authz.ActionsColumn, "code", "name"}, access.Allowed)
	require.Empty(t, access.Denied)
	require.True(t, access.ActionsVisible)
	require.Empty(t, access.Notice)
}

func TestGridColumnsUnmappedColumnsDefaultToVisible(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot(nil, nil, false)

	access := ev.GridColumns(snap, []string{"code", "name"}, nil)
	require.Equal(t, []string{"code", "name"}, access.Allowed)
	require.Empty(t, access.Denied)
}

func TestGridColumnsAnyDenialHidesActionsEvenWhenActionsPermitted(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	// Holds the action permissions but not the one gating the cost column.
	snap := authz.NewSnapshot([]string{"MANAGE_PROJECTS"}, nil, false)

	columns := []string{"code", "cost", authz.ActionsColumn}
	rules := map[string]authz.ColumnRule{
		"cost":              {AnyOf: []string{"VIEW_FINANCE"}, Module: "projects", Label: "Cost"},
		authz.ActionsColumn: {AnyOf: []string{"EDIT_PROJECTS", "DELETE_PROJECTS"}, Module: "projects", Label: "Actions"},
	}
	access := ev.GridColumns(snap, columns, rules)

	require.Equal(t, []string{"code"}, access.Allowed)
	require.Equal(t, []string{"cost"}, access.Denied)
	require.False(t, access.ActionsVisible)
	require.NotContains(t, access.Allowed, authz.ActionsColumn)
}

func TestGridColumnsIdempotentAndOrderIndependent(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot([]string{"VIEW_CATEGORY_TYPES"}, nil, false)

	columns, rules := categoryTypeColumns()
	first := ev.GridColumns(snap, columns, rules)
	second := ev.GridColumns(snap, columns, rules)
	require.Equal(t, first, second)

	permuted := []string{authz.ActionsColumn, "name", "code"}
	third := ev.GridColumns(snap, permuted, rules)
	require.Equal(t, first.Allowed, third.Allowed)
	require.Equal(t, first.Denied, third.Denied)
}

func TestGridColumnsSystemAdmin(t *testing.T) {
	ev := authz.NewEvaluator(testRegistry())
	snap := authz.NewSnapshot(nil, nil, true)

	columns, rules := categoryTypeColumns()
	access := ev.GridColumns(snap, columns, rules)
	require.Empty(t, access.Denied)
	require.True(t, access.ActionsVisible)
}
