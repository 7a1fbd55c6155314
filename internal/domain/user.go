package domain

import "time"

// UserRole represents the access level of a user.
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleDriver  UserRole = "driver"
)

// User represents an account that can sign in to the system.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
}
