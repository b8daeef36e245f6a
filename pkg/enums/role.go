package enums

import (
	"fmt"
	"strings"
)

// Role is the closed set of user roles stored on users.role.
type Role string

const (
	RoleEmployee   Role = "EMPLOYEE"
	RoleSupervisor Role = "SUPERVISOR"
	RoleManager    Role = "MANAGER"
	RoleAdmin      Role = "ADMIN"
)

var validRoles = []Role{
	RoleEmployee,
	RoleSupervisor,
	RoleManager,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role. Matching is case-insensitive.
func ParseRole(value string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// Roles returns every role in ascending privilege order.
func Roles() []Role {
	return append([]Role(nil), validRoles...)
}
