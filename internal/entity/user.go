package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole distinguishes admins from cold callers.
type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleColdCaller UserRole = "Cold Caller"
)

// ValidUserRole reports whether the given role is one of the known values.
func ValidUserRole(r UserRole) bool {
	return r == RoleAdmin || r == RoleColdCaller
}

// User is an employee account with access to the admin panel.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
