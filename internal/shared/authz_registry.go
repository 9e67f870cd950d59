package shared

import (
	"strings"

	"github.com/foliohq/folio/internal/authz"
)

type moduleSpec struct {
	key   string
	label string
}

// Gated modules and their display labels. Every module listed here gets the
// four operation permissions plus a MANAGE_<MODULE> alias expanding to
// exactly those four.
var gatedModules = []moduleSpec{
	{ModuleCategoryTypes, "Category Types"},
	{ModuleCategories, "Categories"},
	{ModuleSkills, "Skills"},
	{ModuleSections, "Sections"},
	{ModuleProjects, "Projects"},
	{ModulePortfolios, "Portfolios"},
	{ModuleMedia, "Media"},
	{ModuleUsers, "Users"},
	{ModuleRoles, "Roles"},
	{ModuleSecurity, "Security"},
}

// AccessRegistry builds the authz registry from the module table. Modules or
// aliases added here need no evaluator changes.
func AccessRegistry() *authz.Registry {
	registry := authz.NewRegistry()
	for _, m := range gatedModules {
		suffix := strings.ToUpper(m.key)
		ops := []string{
			authz.PermissionName(authz.OpView, m.key),
			authz.PermissionName(authz.OpCreate, m.key),
			authz.PermissionName(authz.OpEdit, m.key),
			authz.PermissionName(authz.OpDelete, m.key),
		}
		manage := "MANAGE_" + suffix
		registry.RegisterModule(m.key, m.label, append(append([]string(nil), ops...), manage)...)
		registry.RegisterAlias(manage, ops...)
	}
	return registry
}

// AllPermissions returns every permission name the registry knows, for
// seeding and for the roles administration UI.
func AllPermissions() []string {
	out := make([]string, 0, len(gatedModules)*5)
	for _, m := range gatedModules {
		suffix := strings.ToUpper(m.key)
		out = append(out,
			authz.PermissionName(authz.OpView, m.key),
			authz.PermissionName(authz.OpCreate, m.key),
			authz.PermissionName(authz.OpEdit, m.key),
			authz.PermissionName(authz.OpDelete, m.key),
			"MANAGE_"+suffix,
		)
	}
	return out
}
