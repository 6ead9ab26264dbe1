package domain

import (
	"errors"
	"time"
)

// Roles recognised by the system. Librarians manage the catalog and loan
// ledger but are not administrators for gating purposes.
const (
	RoleRegular   = "REGULAR"
	RoleAdmin     = "ADMIN"
	RoleLibrarian = "LIBRARIAN"
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrNoSession = errors.New("no session bound")
var ErrForbidden = errors.New("access forbidden")

// Identity models one principal: credentials, profile and role.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the identity holds the administrator role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// IsStaff reports whether the identity may manage books and loans.
func (i *Identity) IsStaff() bool {
	return i != nil && (i.Role == RoleAdmin || i.Role == RoleLibrarian)
}

// ValidRole reports whether role is one of the recognised roles.
func ValidRole(role string) bool {
	switch role {
	case RoleRegular, RoleAdmin, RoleLibrarian:
		return true
	}
	return false
}

// SeedCredential is a built-in account usable without registration.
// Passwords are hashed at service construction, never stored in plain text.
type SeedCredential struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// SeedCredentials returns the fixed set of built-in demo accounts.
// Username matching against these is exact and case-sensitive.
func SeedCredentials() []SeedCredential {
	return []SeedCredential{
		{Username: "Admin", Password: "Admin@12345", FirstName: "System", LastName: "Administrator", Email: "admin@library.com", Role: RoleAdmin},
		{Username: "admin", Password: "password", FirstName: "Admin", LastName: "User", Email: "admin@example.com", Role: RoleAdmin},
		{Username: "user", Password: "password", FirstName: "Regular", LastName: "User", Email: "user@example.com", Role: RoleRegular},
	}
}
