package authz

import (
	"fmt"
	"strings"
)

// Evaluator answers permission questions for snapshots against one registry.
// All methods are pure; the evaluator holds no per-user state.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator constructs an evaluator over the given registry.
func NewEvaluator(registry *Registry) *Evaluator {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Evaluator{registry: registry}
}

// Registry exposes the backing registry for label lookups.
func (e *Evaluator) Registry() *Registry { return e.registry }

// HasPermission reports whether the snapshot grants the named permission,
// either directly or through a held manage alias. Unauthenticated snapshots
// are always refused without further inspection; this is the common case for
// logged-out traffic and deliberately produces no diagnostics.
func (e *Evaluator) HasPermission(s Snapshot, name string) bool {
	if !s.Authenticated() {
		return false
	}
	if s.SystemAdmin() {
		return true
	}
	canonical := Canonical(name)
	if canonical == "" {
		return false
	}
	if s.holds(canonical) {
		return true
	}
	for alias, grants := range e.registry.aliases {
		if !s.holds(alias) {
			continue
		}
		for _, g := range grants {
			if g == canonical {
				return true
			}
		}
	}
	return false
}

// HasAny reports whether at least one of the named permissions is granted.
// An empty name list is never satisfied, so a rule accidentally declared
// without permissions denies rather than grants.
func (e *Evaluator) HasAny(s Snapshot, names ...string) bool {
	if s.SystemAdmin() && s.Authenticated() {
		return true
	}
	for _, n := range names {
		if e.HasPermission(s, n) {
			return true
		}
	}
	return false
}

// HasAll reports whether every named permission is granted.
func (e *Evaluator) HasAll(s Snapshot, names ...string) bool {
	if s.SystemAdmin() && s.Authenticated() {
		return true
	}
	for _, n := range names {
		if !e.HasPermission(s, n) {
			return false
		}
	}
	return true
}

// CanAccessModule reports whether any of the module's registered permissions
// is granted. A module that was never registered is always denied; the
// default is fail-closed, not fail-open.
func (e *Evaluator) CanAccessModule(s Snapshot, key string) bool {
	perms, ok := e.registry.ModulePermissions(key)
	if !ok {
		return false
	}
	if !s.Authenticated() {
		return false
	}
	if s.SystemAdmin() {
		return true
	}
	return e.HasAny(s, perms...)
}

// CanPerform evaluates the conventionally named permission for an operation
// on a module, e.g. ("edit", "projects") -> EDIT_PROJECTS.
func (e *Evaluator) CanPerform(s Snapshot, operation, module string) bool {
	return e.HasPermission(s, PermissionName(operation, module))
}

// PermissionName builds the canonical OPERATION_MODULE permission name.
func PermissionName(operation, module string) string {
	operation = strings.TrimSpace(operation)
	module = strings.TrimSpace(module)
	if operation == "" || module == "" {
		return ""
	}
	return Canonical(operation + "_" + module)
}

// Canonical operation names used to build OPERATION_MODULE permissions.
const (
	OpView   = "view"
	OpCreate = "create"
	OpEdit   = "edit"
	OpDelete = "delete"
)

// ModuleDeniedMessage builds the user-facing denial text for a module.
func (e *Evaluator) ModuleDeniedMessage(key string) string {
	return fmt.Sprintf("You don't have permission to view %s.", e.registry.ModuleLabel(key))
}

// GenericDeniedMessage is the fallback denial text when no module applies.
const GenericDeniedMessage = "You don't have permission to perform this action."
