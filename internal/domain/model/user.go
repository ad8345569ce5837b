package model

import "time"

// Role gates access to the staff and management surfaces.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleStaff      Role = "staff"
	RoleManagement Role = "management"
)

// IsStaff reports whether role may operate the order dashboards.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleManagement
}

// User represents a registered customer or restaurant employee.
type User struct {
	ID           int64
	Login        string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller resolved from a token.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}
