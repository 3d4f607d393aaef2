package service

import "github.com/smartcare/clinic-api/internal/core/domain"

// RequireAuthenticated passes when an identity with a known role is attached.
func RequireAuthenticated(id *domain.Identity) error {
	if id == nil || !id.Role.Valid() {
		return domain.ErrUnauthenticated
	}
	return nil
}

// RequireRole passes only on an exact role match. Roles are not ordered, so
// an admin does not satisfy a doctor-only check.
func RequireRole(id *domain.Identity, role domain.Role) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if id.Role != role {
		return domain.ErrForbidden
	}
	return nil
}
