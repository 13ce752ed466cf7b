package models

import "time"

// Role is the account class resolved at login.
type Role string

const (
	RoleAdministrator Role = "admin"
	RoleStandard      Role = "standard"
)

// RoleFor maps the registration flag to a Role.
func RoleFor(isAdministrator bool) Role {
	if isAdministrator {
		return RoleAdministrator
	}
	return RoleStandard
}

// Account is a registered user. Identity is the primary key; Role never
// changes after registration.
type Account struct {
	Identity   string
	SecretHash []byte
	Salt       []byte
	Role       Role
	CreatedAt  time.Time
}

// IsAdministrator reports whether the account has the administrator role.
func (a *Account) IsAdministrator() bool {
	return a.Role == RoleAdministrator
}
