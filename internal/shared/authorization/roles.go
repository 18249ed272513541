// Package authorization names the roles, resources and actions the
// capability policy is expressed in.
package authorization

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleSupport UserRole = "support"
	RoleClient  UserRole = "client"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role works tickets (admin or support).
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleSupport
}

func (r UserRole) IsClient() bool {
	return r == RoleClient
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleSupport || r == RoleClient
}

// ParseUserRole falls back to client for unknown values, the least
// privileged role.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleClient
}

func AllRoles() []UserRole {
	return []UserRole{RoleAdmin, RoleSupport, RoleClient}
}
