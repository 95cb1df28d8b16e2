package auth

import "github.com/BadhanCB/outfitex-backend/internal/domain"

// RoleSet is the set of roles a route accepts.
type RoleSet map[domain.Role]struct{}

// NewRoleSet builds a set. With no roles it admits every known role.
func NewRoleSet(roles ...domain.Role) RoleSet {
	if len(roles) == 0 {
		roles = []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin}
	}
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Allows reports membership. Unknown roles are never allowed.
func (s RoleSet) Allows(role domain.Role) bool {
	if !role.Valid() {
		return false
	}
	_, ok := s[role]
	return ok
}
