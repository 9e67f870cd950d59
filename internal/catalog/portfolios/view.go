package portfolios

import (
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

// ViewConfig declares the portfolios index page. The projects column reads
// project data and so needs a projects grant.
func ViewConfig() shared.ViewConfig {
	projectRule := []string{
		internalShared.PermViewProjects,
		internalShared.PermManageProjects,
	}
	return shared.ViewConfig{
		Module:  internalShared.ModulePortfolios,
		Columns: []string{"code", "name", "projects", authz.ActionsColumn},
		ColumnRules: map[string]authz.ColumnRule{
			"projects": {
				AnyOf:  projectRule,
				Module: internalShared.ModuleProjects,
				Label:  "Projects",
			},
			authz.ActionsColumn: {
				AnyOf: []string{
					authz.PermissionName(authz.OpEdit, internalShared.ModulePortfolios),
					authz.PermissionName(authz.OpDelete, internalShared.ModulePortfolios),
					internalShared.PermManagePortfolios,
				},
				Module: internalShared.ModulePortfolios,
				Label:  "Actions",
			},
		},
		Filters: []shared.FilterField{
			{Key: "name", Label: "Name", Type: shared.FilterText},
			{Key: "language", Label: "Language", Type: shared.FilterMultiSelect},
		},
		SortFields:  []string{"code"},
		DefaultSort: "code",
	}
}
