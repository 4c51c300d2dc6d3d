package domain

import dErrors "storegate/pkg/domainerrors"

// Role is the storefront role mirrored between the primary store and the
// secondary identity store's custom claims.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole validates caller-supplied role names at the boundary.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCustomer, RoleManager, RoleAdmin:
		return Role(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
}

func (r Role) String() string { return string(r) }
