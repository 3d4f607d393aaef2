package service

import "github.com/smartcare/clinic-api/internal/core/domain"

// AccessPolicy decides which appointment and prescription records a caller
// may read, create or delete.
type AccessPolicy struct{}

// ScopeForRead returns the unrestricted scope for admins and the caller's own
// records for doctors. A doctor without an identity id gets a scope that
// matches nothing, never the unrestricted one.
func (AccessPolicy) ScopeForRead(caller *domain.Identity) (domain.RecordScope, error) {
	if err := RequireAuthenticated(caller); err != nil {
		return domain.RecordScope{}, err
	}
	switch caller.Role {
	case domain.RoleAdmin:
		return domain.RecordScope{All: true}, nil
	case domain.RoleDoctor:
		return domain.RecordScope{DoctorID: caller.ID}, nil
	default:
		return domain.RecordScope{}, domain.ErrForbidden
	}
}

// AuthorizeBooking always passes: patients book without an account.
func (AccessPolicy) AuthorizeBooking(*domain.Identity) error {
	return nil
}

// AuthorizePrescription requires an authenticated doctor.
func (AccessPolicy) AuthorizePrescription(caller *domain.Identity) error {
	return RequireRole(caller, domain.RoleDoctor)
}

// AuthorizeDelete requires an admin.
func (AccessPolicy) AuthorizeDelete(caller *domain.Identity) error {
	return RequireRole(caller, domain.RoleAdmin)
}
