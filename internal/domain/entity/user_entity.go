package entity

import (
	"time"
)

// Role is the coarse-grained permission tag on an account.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// User is the aggregate root for the user domain
// Passwords are stored as bcrypt hashes in HashedPassword.
//
// VerificationToken is set only while the account is pending
// verification; it is cleared when the token is consumed.
type User struct {
	ID                       int64
	Username                 string
	Email                    string
	HashedPassword           string
	Role                     Role
	IsVerified               bool
	VerificationToken        *string
	VerificationTokenExpires *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
