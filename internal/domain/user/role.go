package user

import "fmt"

// Role classifies a customer account. It drives both discount eligibility
// and authorization checks, so the set is closed: parse at the boundary,
// compare against the constants everywhere else.
type Role string

const (
	RoleStandard      Role = "USER"
	RolePremium       Role = "PREMIUM_USER"
	RoleAdministrator Role = "ADMIN"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStandard, RolePremium, RoleAdministrator:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, raw)
	}
}

func (r Role) IsAdmin() bool {
	return r == RoleAdministrator
}
