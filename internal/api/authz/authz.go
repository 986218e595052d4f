// Package authz holds the resource-ownership rule applied by mutation
// handlers: the caller must own the targeted resource or hold the admin role.
package authz

import "github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/domain"

// SameUserOrAdmin returns nil when principal may act on a resource owned by
// ownerID, and ErrForbidden otherwise. Handlers call it after loading the
// target resource, so unauthenticated callers never learn whether the
// resource exists.
func SameUserOrAdmin(principal domain.Principal, ownerID string) error {
	if principal.ID == ownerID || principal.Role == domain.RoleAdmin {
		return nil
	}
	return domain.ErrForbidden
}
