package commands

import (
	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"
)

var (
	ErrStaffRoleRequired   = errs.NewForbiddenError("staff role required")
	ErrCourierRoleRequired = errs.NewForbiddenError("courier role required")
	ErrAdminRoleRequired   = errs.NewForbiddenError("admin role required")
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

func requireStaff(identity kernel.Identity) error {
	if err := validateIdentity(identity); err != nil {
		return err
	}
	if !identity.IsStaff() {
		return ErrStaffRoleRequired
	}
	return nil
}

func requireCourier(identity kernel.Identity) error {
	if err := validateIdentity(identity); err != nil {
		return err
	}
	if identity.Role != kernel.RoleCourier {
		return ErrCourierRoleRequired
	}
	return nil
}
