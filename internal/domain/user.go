package domain

import (
	"errors"
	"time"
)

// User is an authenticated operator of the back office
type User struct {
	Username string
	Role     Role
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleAccountant can record and amend bookings but not manage bank accounts
	RoleAccountant Role = "accountant"

	// RoleViewer can only view resources, no mutations
	RoleViewer Role = "viewer"
)

// Valid roles
var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleAccountant: true,
	RoleViewer:     true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanWrite checks if the role can create or amend records
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleAccountant
}

// CanDelete checks if the role can delete records
func (r Role) CanDelete() bool {
	return r == RoleAdmin
}

// Session is an issued access token
type Session struct {
	Token     string
	User      User
	ExpiresAt time.Time
}

// Authentication errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInsufficientRole   = errors.New("insufficient role for this operation")
)
