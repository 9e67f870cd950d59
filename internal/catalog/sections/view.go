package sections

import (
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

func ViewConfig() shared.ViewConfig {
	return shared.ViewConfig{
		Module:  internalShared.ModuleSections,
		Columns: []string{"code", "name", "sort_order", authz.ActionsColumn},
		ColumnRules: map[string]authz.ColumnRule{
			authz.ActionsColumn: {
				AnyOf: []string{
					authz.PermissionName(authz.OpEdit, internalShared.ModuleSections),
					authz.PermissionName(authz.OpDelete, internalShared.ModuleSections),
					internalShared.PermManageSections,
				},
				Module: internalShared.ModuleSections,
				Label:  "Actions",
			},
		},
		Filters: []shared.FilterField{
			{Key: "code", Label: "Code", Type: shared.FilterText},
			{Key: "language", Label: "Language", Type: shared.FilterMultiSelect},
		},
		SortFields:  []string{"sort_order", "code"},
		DefaultSort: "sort_order",
	}
}
