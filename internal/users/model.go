package users

import "time"

// User is an admin console account.
type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Active        bool      `json:"active"`
	IsSystemAdmin bool      `json:"is_systemadmin"`
	RoleIDs       []int64   `json:"role_ids"`
	CreatedAt     time.Time `json:"created_at"`

	// PasswordHash never leaves the server.
	PasswordHash string `json:"-"`
}
