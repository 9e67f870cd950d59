// Package authz implements permission evaluation for the admin console.
//
// Evaluation is split in two: an immutable Snapshot of the caller's grants,
// and a pure Evaluator over a Registry of module permission lists and
// manage-alias expansions. Gates, view descriptors and handlers all consume
// the same evaluator so a revoked grant takes effect on the next request
// without any invalidation hooks in the callers.
package authz

import (
	"sort"
	"strings"
)

// Role is a named permission bundle attached to the user. At this layer roles
// are display and grouping only; grants flow through permission names.
type Role struct {
	Name string `json:"name"`
}

// Snapshot is an immutable view of one user's grants at a point in time.
// The zero value is an unauthenticated snapshot with no grants.
type Snapshot struct {
	perms         map[string]struct{}
	roles         []Role
	systemAdmin   bool
	authenticated bool
}

// NewSnapshot builds a snapshot from raw grants. Permission names are
// canonicalized so stored grants match case-insensitively.
func NewSnapshot(perms []string, roles []Role, systemAdmin bool) Snapshot {
	set := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		p = Canonical(p)
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	return Snapshot{
		perms:         set,
		roles:         append([]Role(nil), roles...),
		systemAdmin:   systemAdmin,
		authenticated: true,
	}
}

// Anonymous returns the snapshot used for requests without a session, and as
// the fail-closed result when grants cannot be resolved.
func Anonymous() Snapshot {
	return Snapshot{}
}

// Authenticated reports whether the snapshot belongs to a logged-in user.
func (s Snapshot) Authenticated() bool { return s.authenticated }

// SystemAdmin reports whether every permission check short-circuits to granted.
func (s Snapshot) SystemAdmin() bool { return s.systemAdmin }

// Roles returns the user's roles.
func (s Snapshot) Roles() []Role {
	return append([]Role(nil), s.roles...)
}

// Permissions returns the granted permission names in sorted order.
func (s Snapshot) Permissions() []string {
	out := make([]string, 0, len(s.perms))
	for p := range s.perms {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// holds reports direct membership of a canonical permission name.
func (s Snapshot) holds(canonical string) bool {
	_, ok := s.perms[canonical]
	return ok
}

// Canonical normalizes a permission name to its UPPER_SNAKE canonical form.
func Canonical(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
