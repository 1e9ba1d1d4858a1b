package model

import "fmt"

// Role is a member's standing inside a campaign. Values are persisted as smallint.
type Role int16

const (
	RolePlayer Role = 0
	RoleMaster Role = 1
	RoleOwner  Role = 2
)

// ParseRole converts a raw status value, rejecting anything outside {0,1,2}
func ParseRole(v int) (Role, error) {
	r := Role(v)
	if int(r) != v || !r.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRole, v)
	}
	return r, nil
}

func (r Role) Valid() bool {
	return r >= RolePlayer && r <= RoleOwner
}

// AtLeast reports whether r grants everything min grants
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleMaster:
		return "master"
	case RoleOwner:
		return "owner"
	default:
		return fmt.Sprintf("role(%d)", int16(r))
	}
}
