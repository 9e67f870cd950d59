package categories

import (
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

// ViewConfig declares the categories index page. The type column and the
// type filter read category type data, so both require a category types
// grant on top of the module gate.
func ViewConfig() shared.ViewConfig {
	typeRule := []string{
		internalShared.PermViewCategoryTypes,
		internalShared.PermManageCategoryTypes,
	}
	return shared.ViewConfig{
		Module:  internalShared.ModuleCategories,
		Columns: []string{"code", "name", "type", authz.ActionsColumn},
		ColumnRules: map[string]authz.ColumnRule{
			"type": {
				AnyOf:  typeRule,
				Module: internalShared.ModuleCategoryTypes,
				Label:  "Type",
			},
			authz.ActionsColumn: {
				AnyOf: []string{
					authz.PermissionName(authz.OpEdit, internalShared.ModuleCategories),
					authz.PermissionName(authz.OpDelete, internalShared.ModuleCategories),
					internalShared.PermManageCategories,
				},
				Module: internalShared.ModuleCategories,
				Label:  "Actions",
			},
		},
		Filters: []shared.FilterField{
			{Key: "code", Label: "Code", Type: shared.FilterText},
			{Key: "name", Label: "Name", Type: shared.FilterText},
			{Key: "type_id", Label: "Type", Type: shared.FilterMultiSelect},
		},
		FilterRules: map[string]authz.FilterRule{
			"type_id": {
				AnyOf:  typeRule,
				Module: internalShared.ModuleCategoryTypes,
			},
		},
		SortFields:  []string{"code", "name", "type"},
		DefaultSort: "code",
	}
}
