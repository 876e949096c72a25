package model

import "time"

// Role values stored in the users.role column.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a row of the `users` table.  The username doubles as
// the account's email address and is unique across all users.  Only a
// bcrypt hash of the password is ever stored; handlers define separate
// response types so the hash never leaves the service layer.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique, email address)
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	Role         string    // users.role (USER or ADMIN)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
