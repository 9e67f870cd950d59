package rbac

import "time"

// Role represents a high-level permission grouping.
type Role struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission represents an atomic capability such as VIEW_PROJECTS.
type Permission struct {
	ID          int64
	Name        string
	Description string
}

// UserGrants aggregates everything the gate layer needs about one user.
type UserGrants struct {
	Permissions []string
	Roles       []Role
	SystemAdmin bool
}
