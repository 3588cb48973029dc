package model

import "fmt"

// Role classifies a frame member. Values are stable strings because they
// are persisted and used as index tag values.
type Role string

const (
	RoleColumn     Role = "column"
	RoleGirder     Role = "girder"
	RoleBeam       Role = "beam"
	RoleSFRSColumn Role = "SFRS_column"
	RoleSFRSBeam   Role = "SFRS_beam"
	RoleSFRSBrace  Role = "SFRS_brace"
)

// promotions is the one-way reclassification state machine. A member is
// never demoted and braces are born lateral, so they have no entry.
var promotions = map[Role]Role{
	RoleColumn: RoleSFRSColumn,
	RoleGirder: RoleSFRSBeam,
	RoleBeam:   RoleSFRSBeam,
}

// Lateral reports whether the role belongs to the SFRS.
func (r Role) Lateral() bool {
	switch r {
	case RoleSFRSColumn, RoleSFRSBeam, RoleSFRSBrace:
		return true
	}
	return false
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleColumn, RoleGirder, RoleBeam, RoleSFRSColumn, RoleSFRSBeam, RoleSFRSBrace:
		return true
	}
	return false
}

// Promote reclassifies the member into its SFRS counterpart. Promoting a
// member that is already lateral, or across the state machine (for
// example a girder to a column), is an error.
func (m *Member) Promote(to Role) error {
	next, ok := promotions[m.Role]
	if !ok {
		return fmt.Errorf("member %d: role %q cannot be promoted", m.ID, m.Role)
	}
	if next != to {
		return fmt.Errorf("member %d: role %q promotes to %q, not %q", m.ID, m.Role, next, to)
	}
	m.Role = to
	return nil
}
