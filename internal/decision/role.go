package decision

import "fmt"

// PlayerRole identifies the tactical role a player occupies for the whole
// match. The set is closed; anything else is a setup error.
type PlayerRole string

const (
	RoleCenterBack   PlayerRole = "CB"
	RoleFullBack     PlayerRole = "FB"
	RoleDefensiveMid PlayerRole = "DM"
	RoleCentralMid   PlayerRole = "CM"
	RoleAttackingMid PlayerRole = "AM"
	RoleWinger       PlayerRole = "WG"
	RoleStriker      PlayerRole = "ST"
)

// Roles lists every valid role in a fixed order.
func Roles() []PlayerRole {
	return []PlayerRole{
		RoleCenterBack,
		RoleFullBack,
		RoleDefensiveMid,
		RoleCentralMid,
		RoleAttackingMid,
		RoleWinger,
		RoleStriker,
	}
}

// Valid reports whether the role is part of the closed set.
func (r PlayerRole) Valid() bool {
	switch r {
	case RoleCenterBack, RoleFullBack, RoleDefensiveMid, RoleCentralMid,
		RoleAttackingMid, RoleWinger, RoleStriker:
		return true
	}
	return false
}

// ParseRole converts a string into a PlayerRole.
func ParseRole(s string) (PlayerRole, error) {
	r := PlayerRole(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown player role %q", s)
	}
	return r, nil
}
