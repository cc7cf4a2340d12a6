package kernel

import "errors"

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID UUID
	Role   Role
}

func NewIdentity(userID UUID, role Role) (Identity, error) {
	if err := errors.Join(userID.Validate(), role.Validate()); err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, Role: role}, nil
}

func (i Identity) IsStaff() bool {
	return i.Role.IsStaff()
}
