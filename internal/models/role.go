package models

import "fmt"

// Role identifies what kind of user is acting on the system.
type Role string

const (
	RoleStudent  Role = "student"
	RoleAcademic Role = "academic"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a claim value to a known role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAcademic, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Counterpart returns the other negotiating party. Only meaningful for
// students and academics; admins have no counterpart.
func (r Role) Counterpart() Role {
	switch r {
	case RoleStudent:
		return RoleAcademic
	case RoleAcademic:
		return RoleStudent
	default:
		return r
	}
}
