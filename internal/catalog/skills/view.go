package skills

import (
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

// ViewConfig declares the skills index page. The category column and filter
// read from the categories module.
func ViewConfig() shared.ViewConfig {
	categoryRule := []string{
		internalShared.PermViewCategories,
		internalShared.PermManageCategories,
	}
	return shared.ViewConfig{
		Module:  internalShared.ModuleSkills,
		Columns: []string{"code", "name", "category", authz.ActionsColumn},
		ColumnRules: map[string]authz.ColumnRule{
			"category": {
				AnyOf:  categoryRule,
				Module: internalShared.ModuleCategories,
				Label:  "Category",
			},
			authz.ActionsColumn: {
				AnyOf: []string{
					authz.PermissionName(authz.OpEdit, internalShared.ModuleSkills),
					authz.PermissionName(authz.OpDelete, internalShared.ModuleSkills),
					internalShared.PermManageSkills,
				},
				Module: internalShared.ModuleSkills,
				Label:  "Actions",
			},
		},
		Filters: []shared.FilterField{
			{Key: "name", Label: "Name", Type: shared.FilterText},
			{Key: "category_id", Label: "Category", Type: shared.FilterMultiSelect},
		},
		FilterRules: map[string]authz.FilterRule{
			"category_id": {
				AnyOf:  categoryRule,
				Module: internalShared.ModuleCategories,
			},
		},
		SortFields:  []string{"code", "name", "category"},
		DefaultSort: "code",
	}
}
