package kernel

import (
	"fmt"

	"foodorder/internal/pkg/errs"
)

// Role is the role claim carried by an authenticated caller.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
	RoleCourier Role = "courier"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleManager, RoleAdmin, RoleCourier:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", string(r)))
	}
}

// IsStaff reports whether the role may manage menu data and the order lifecycle.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleManager
}

func (r Role) String() string {
	return string(r)
}
