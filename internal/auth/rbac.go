package auth

import "github.com/spec-kit/account-gateway/internal/domain"

// Role-change and deletion policy. Pure functions over fresh backend data;
// decisions must be recomputed per (actor, target) pair on every request
// because role assignments can change between requests.

// CanChangeRole reports whether actor may change target's role. Superadmins
// may change anyone's role except their own (prevents self-demotion
// lockout); admins may only promote plain users.
func CanChangeRole(actor, target *domain.User) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.Role == domain.RoleSuperadmin && target.ID != actor.ID {
		return true
	}
	if actor.Role == domain.RoleAdmin && target.Role == domain.RoleUser {
		return true
	}
	return false
}

// AvailableRoles returns the set of roles actor may assign to target. When
// no change is permitted the set contains only the target's current role.
func AvailableRoles(actor, target *domain.User) []domain.Role {
	if actor == nil || target == nil {
		return nil
	}
	if actor.Role == domain.RoleSuperadmin {
		return []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin}
	}
	if actor.Role == domain.RoleAdmin && target.Role == domain.RoleUser {
		return []domain.Role{domain.RoleUser, domain.RoleAdmin}
	}
	return []domain.Role{target.Role}
}

// CanDelete reports whether actor may delete target. Deletion is
// superadmin-exclusive and never self-directed; admins cannot delete anyone.
func CanDelete(actor, target *domain.User) bool {
	if actor == nil || target == nil {
		return false
	}
	return actor.Role == domain.RoleSuperadmin && target.ID != actor.ID
}

// RoleAssignable reports whether role is in the assignable set for the pair.
func RoleAssignable(actor, target *domain.User, role domain.Role) bool {
	for _, allowed := range AvailableRoles(actor, target) {
		if allowed == role {
			return true
		}
	}
	return false
}
