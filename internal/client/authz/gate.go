// Package authz decides whether the current identity may reach a given
// feature. It is a pure predicate over the identity snapshot: no clock, no
// network, no token access. The backend re-checks authorization on every
// request, so this gate only shapes what the client offers to show.
package authz

import "github.com/voyago/traveldesk/internal/client/session"

// CanAccess reports whether id may use a feature guarded by requiredRoles.
// An unauthenticated identity is always denied. With no required roles,
// authentication alone is enough; otherwise the identity must carry at least
// one of them.
func CanAccess(id session.Identity, requiredRoles ...string) bool {
	if !id.IsAuthenticated {
		return false
	}

	if len(requiredRoles) == 0 {
		return true
	}

	for _, role := range requiredRoles {
		if id.HasRole(role) {
			return true
		}
	}

	return false
}

// Guard bundles a feature's role requirements so call sites can declare them
// once and evaluate repeatedly as the identity changes.
type Guard struct {
	// RequiredRoles is the any-of role set. Empty means any authenticated
	// identity passes.
	RequiredRoles []string
}

// Allows reports whether id passes the guard.
func (g Guard) Allows(id session.Identity) bool {
	return CanAccess(id, g.RequiredRoles...)
}
