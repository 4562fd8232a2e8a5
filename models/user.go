package models

// Role identifies which portal a user belongs to.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RolePilot  Role = "pilot"
	RoleEditor Role = "editor"
)

// User represents a login account.
// It maps to the `users` table in SQLite.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Role     Role   `db:"role" json:"role"`
}

