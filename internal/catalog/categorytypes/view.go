package categorytypes

import (
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

// ViewConfig declares the category types index page. Code and name carry no
// rule: anyone who passed the module gate may see them. The actions column
// needs an editing grant.
func ViewConfig() shared.ViewConfig {
	return shared.ViewConfig{
		Module:  internalShared.ModuleCategoryTypes,
		Columns: []string{"code", "name", authz.ActionsColumn},
		ColumnRules: map[string]authz.ColumnRule{
			authz.ActionsColumn: {
				AnyOf: []string{
					authz.PermissionName(authz.OpEdit, internalShared.ModuleCategoryTypes),
					authz.PermissionName(authz.OpDelete, internalShared.ModuleCategoryTypes),
					internalShared.PermManageCategoryTypes,
				},
				Module: internalShared.ModuleCategoryTypes,
				Label:  "Actions",
			},
		},
		Filters: []shared.FilterField{
			{Key: "code", Label: "Code", Type: shared.FilterText},
			{Key: "name", Label: "Name", Type: shared.FilterText},
		},
		SortFields:  []string{"code", "name"},
		DefaultSort: "code",
	}
}
