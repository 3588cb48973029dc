// Package model defines the entity types shared by the generation,
// lateral-placement, and resync passes: frame members, wall panels,
// floors, and the small descriptor grammar used to locate SFRS bays.
//
// Everything here is a plain value type with no external dependencies so
// the geometry passes and the store can share records freely.
package model

import "fmt"

// Point2 is a plan-view coordinate in inches.
type Point2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point3 is a model coordinate in inches.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// XY projects the point onto the floor plane.
func (p Point3) XY() Point2 { return Point2{X: p.X, Y: p.Y} }

func (p Point3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}

// Direction identifies the lateral axis a member resists load in.
type Direction string

const (
	DirectionNone Direction = ""
	DirectionX    Direction = "X"
	DirectionY    Direction = "Y"
)

// DiaphragmKind selects the floor diaphragm constraint.
type DiaphragmKind string

const (
	DiaphragmRigid     DiaphragmKind = "Rigid"
	DiaphragmSemiRigid DiaphragmKind = "Semi-rigid"
)

// Fixity selects the base support condition.
type Fixity string

const (
	FixityPinned Fixity = "Pinned"
	FixityFixed  Fixity = "Fixed"
)

// CardinalTopCenter is the insertion point used for all horizontal
// framing, so beam top flanges land on the floor plane.
const CardinalTopCenter = 8

// Options holds the model-wide generation settings.
type Options struct {
	Diaphragm     DiaphragmKind
	BaseFixity    Fixity
	RigidEndZones bool
	InfillBeams   int // interior beams per sub-bay, 0-4
}

// DefaultOptions mirrors the template model defaults.
func DefaultOptions() Options {
	return Options{
		Diaphragm:  DiaphragmRigid,
		BaseFixity: FixityPinned,
	}
}

// Member is one frame object (column, girder, beam, or brace). ID is
// assigned by the model sink at creation and is immutable; ID zero means
// the creation call failed and every later mutation must be a no-op.
type Member struct {
	ID        int64
	Role      Role
	Story     string
	Section   string
	I, J      Point3
	IsLateral bool
	Direction Direction
	Deleted   bool
}

// InBay reports whether both member endpoints fall within [lo, hi] along
// the ordinate axis of the given lateral direction. Endpoints exactly on
// the bay boundary count as inside.
func (m *Member) InBay(dir Direction, lo, hi float64) bool {
	ord := func(p Point3) float64 {
		if dir == DirectionX {
			return p.X
		}
		return p.Y
	}
	i, j := ord(m.I), ord(m.J)
	return i >= lo && i <= hi && j >= lo && j <= hi
}

// WallPanel is one vertical shell element. Panels sharing a Pier label
// are analyzed together as a single wall element. Wall IDs live in the
// sink's area-object space and may collide numerically with frame IDs.
type WallPanel struct {
	ID        int64
	Story     string
	Vertices  [4]Point3
	Section   string
	Direction Direction
	Pier      string
}

// Floor is one record of the floor catalog, ordered roof to base.
// Loads are in model units: SDLoad and LiveLoad in kip/in², CladdingLoad
// in kip/in of perimeter. Boundary carries no repeated closing vertex.
type Floor struct {
	Name         string
	Elevation    float64 // in
	Height       float64 // story height below this floor, in
	Boundary     []Point2
	SDLoad       float64
	LiveLoad     float64
	CladdingLoad float64
	Slab         string
	Girder       string
	Beam         string
	Column       string
}

// Below is the elevation of the floor one story down.
func (f *Floor) Below() float64 { return f.Elevation - f.Height }

// MFSections holds the moment-frame section sizes for one floor.
type MFSections struct {
	ColumnX string
	BeamX   string
	ColumnY string
	BeamY   string
}

// BraceRow holds the brace section and configuration for one floor.
type BraceRow struct {
	SectionX string
	ConfigX  BraceConfig
	SectionY string
	ConfigY  BraceConfig
}

// WallRow holds the wall section assignment for one floor.
type WallRow struct {
	SectionX string
	SectionY string
}
