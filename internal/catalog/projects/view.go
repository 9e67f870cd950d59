package projects

import (
	"github.com/foliohq/folio/internal/authz"
	"github.com/foliohq/folio/internal/catalog/shared"
	internalShared "github.com/foliohq/folio/internal/shared"
)

// ViewConfig declares the projects index page. Category and skill columns
// and filters read other modules' data and carry their grants; the published
// flag is plain project data.
func ViewConfig() shared.ViewConfig {
	categoryRule := []string{
		internalShared.PermViewCategories,
		internalShared.PermManageCategories,
	}
	skillRule := []string{
		internalShared.PermViewSkills,
		internalShared.PermManageSkills,
	}
	return shared.ViewConfig{
		Module:  internalShared.ModuleProjects,
		Columns: []string{"code", "name", "published", "categories", "skills", authz.ActionsColumn},
		ColumnRules: map[string]authz.ColumnRule{
			"categories": {
				AnyOf:  categoryRule,
				Module: internalShared.ModuleCategories,
				Label:  "Categories",
			},
			"skills": {
				AnyOf:  skillRule,
				Module: internalShared.ModuleSkills,
				Label:  "Skills",
			},
			authz.ActionsColumn: {
				AnyOf: []string{
					internalShared.PermEditProjects,
					internalShared.PermDeleteProjects,
					internalShared.PermManageProjects,
				},
				Module: internalShared.ModuleProjects,
				Label:  "Actions",
			},
		},
		Filters: []shared.FilterField{
			{Key: "name", Label: "Name", Type: shared.FilterText},
			{Key: "published", Label: "Published", Type: shared.FilterText},
			{Key: "category_id", Label: "Category", Type: shared.FilterMultiSelect},
			{Key: "skill_id", Label: "Skill", Type: shared.FilterMultiSelect},
			{Key: "language", Label: "Language", Type: shared.FilterMultiSelect},
		},
		FilterRules: map[string]authz.FilterRule{
			"category_id": {
				AnyOf:  categoryRule,
				Module: internalShared.ModuleCategories,
			},
			"skill_id": {
				AnyOf:  skillRule,
				Module: internalShared.ModuleSkills,
			},
		},
		SortFields:  []string{"code", "published"},
		DefaultSort: "code",
	}
}
