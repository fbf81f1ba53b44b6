package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleList wraps the issuer's `{"roles": [...]}` claim shape used by both the
// realm-level and the per-client resource-level role claims.
type RoleList struct {
	Roles []string `json:"roles"`
}

// Claims is the subset of access-token claims the client relies on. The
// registered claims (sub, exp, iat, ...) come straight from golang-jwt; the
// rest are the issuer's profile and role claims.
type Claims struct {
	jwt.RegisteredClaims

	// Profile claims
	Email             string `json:"email,omitempty"`
	Name              string `json:"name,omitempty"`
	PreferredUsername string `json:"preferred_username,omitempty"`

	// Role claims. RealmAccess holds realm-wide roles, ResourceAccess holds
	// per-client roles keyed by client id.
	RealmAccess    RoleList            `json:"realm_access,omitempty"`
	ResourceAccess map[string]RoleList `json:"resource_access,omitempty"`
}

// Roles returns the union of realm-level roles and every resource-level role
// list, with duplicates collapsed. Order is not significant.
func (c *Claims) Roles() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(c.RealmAccess.Roles))

	add := func(roles []string) {
		for _, role := range roles {
			if _, ok := seen[role]; ok {
				continue
			}
			seen[role] = struct{}{}
			out = append(out, role)
		}
	}

	add(c.RealmAccess.Roles)
	for _, access := range c.ResourceAccess {
		add(access.Roles)
	}

	return out
}

// HasRole reports whether role appears in any of the token's role claims.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles(), role)
}

// IsExpiredAt reports whether the token's exp claim lies strictly before now,
// at seconds granularity and with no clock-skew leeway. A token without an
// exp claim is treated as expired.
func (c *Claims) IsExpiredAt(now time.Time) bool {
	if c.ExpiresAt == nil {
		return true
	}
	return c.ExpiresAt.Unix() < now.Unix()
}

// DisplayName returns the best human-readable name available in the claims,
// falling back from name to preferred_username to sub.
func (c *Claims) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.PreferredUsername != "":
		return c.PreferredUsername
	default:
		return c.Subject
	}
}
