package core

import "strings"

// Roles are namespaced: "admin:principal" is an admin role.
const (
	RoleAdmin          = "admin:"
	RoleAdminOwner     = "admin:owner"
	RoleAdminPrincipal = "admin:principal"

	RoleTutor = "tutor:"

	RoleGuardian = "guardian:"
)

// StaffRoles may use the admin tables.
var StaffRoles = []string{RoleAdmin, RoleTutor}

// HasAnyRole reports whether any of roles falls within any of the namespaces.
func HasAnyRole(roles []string, namespaces ...string) bool {
	for _, role := range roles {
		for _, ns := range namespaces {
			if role == ns || (strings.HasSuffix(ns, ":") && strings.HasPrefix(role, ns)) {
				return true
			}
		}
	}
	return false
}

func (c Caller) IsStaff() bool {
	return HasAnyRole(c.Roles, StaffRoles...)
}
