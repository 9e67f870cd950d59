package shared

// Core platform permissions.
const (
	PermViewUsers   = "VIEW_USERS"
	PermCreateUsers = "CREATE_USERS"
	PermEditUsers   = "EDIT_USERS"
	PermDeleteUsers = "DELETE_USERS"
	PermManageUsers = "MANAGE_USERS"

	PermViewRoles   = "VIEW_ROLES"
	PermCreateRoles = "CREATE_ROLES"
	PermEditRoles   = "EDIT_ROLES"
	PermDeleteRoles = "DELETE_ROLES"
	PermManageRoles = "MANAGE_ROLES"

	PermViewSecurity   = "VIEW_SECURITY"
	PermManageSecurity = "MANAGE_SECURITY"
)

// Core module keys.
const (
	ModuleUsers    = "users"
	ModuleRoles    = "roles"
	ModuleSecurity = "security"
)
