package models

import "time"

// User roles.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleInventory = "inventory"
)

// ValidRole reports whether r is one of the defined user roles.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleInventory
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
