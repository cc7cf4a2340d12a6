// Package queries contains read operations. Handlers read straight from the
// database through gorm and return flat view structs; they never load
// aggregates for mutation.
package queries

import (
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	ErrStaffRoleRequired   = errs.NewForbiddenError("staff role required")
	ErrCourierRoleRequired = errs.NewForbiddenError("courier role required")
	ErrNotOrderOwner       = errs.NewForbiddenError("not your order")
)

func validateIdentity(identity kernel.Identity) error {
	if err := identity.UserID.Validate(); err != nil {
		return errs.NewUnauthorizedErrorWithCause("no valid session", err)
	}
	if err := identity.Role.Validate(); err != nil {
		return errs.NewUnauthorizedErrorWithCause("no valid session", err)
	}
	return nil
}
