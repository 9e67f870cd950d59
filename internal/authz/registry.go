package authz

import "strings"

type moduleEntry struct {
	label string
	perms []string
}

// Registry holds the module permission lists and the manage-alias expansion
// table. Both are data: modules and aliases are registered once at startup,
// and the evaluator never hardcodes either.
type Registry struct {
	modules map[string]moduleEntry
	aliases map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]moduleEntry),
		aliases: make(map[string][]string),
	}
}

// RegisterModule declares a module with its human label and the permissions
// that grant access. A module never registered here is always denied.
func (r *Registry) RegisterModule(key, label string, perms ...string) {
	canon := make([]string, 0, len(perms))
	for _, p := range perms {
		if c := Canonical(p); c != "" {
			canon = append(canon, c)
		}
	}
	r.modules[moduleKey(key)] = moduleEntry{label: label, perms: canon}
}

// RegisterAlias declares a manage alias: holding alias implicitly grants
// every permission in grants, and only those.
func (r *Registry) RegisterAlias(alias string, grants ...string) {
	canon := make([]string, 0, len(grants))
	for _, g := range grants {
		if c := Canonical(g); c != "" {
			canon = append(canon, c)
		}
	}
	r.aliases[Canonical(alias)] = canon
}

// ModulePermissions returns the registered permission list for a module key.
func (r *Registry) ModulePermissions(key string) ([]string, bool) {
	entry, ok := r.modules[moduleKey(key)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), entry.perms...), true
}

// ModuleLabel returns the human label for a module key, falling back to the
// key itself for unregistered modules.
func (r *Registry) ModuleLabel(key string) string {
	if entry, ok := r.modules[moduleKey(key)]; ok && entry.label != "" {
		return entry.label
	}
	return key
}

func moduleKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
