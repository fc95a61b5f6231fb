package model

// Role closed set of user roles
type Role string

const (
	RoleStudent Role = "Student"
	RoleWarden  Role = "Warden"
	RoleDWO     Role = "DWO"
)

// Roles every valid role, in display order
var Roles = []Role{RoleStudent, RoleWarden, RoleDWO}

// ParseRole returns the role named s and whether it is one of Roles
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}
