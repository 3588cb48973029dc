// Package lateral converts ordinary frames into the seismic-force-
// resisting system. It interprets per-bay descriptors ("<on>;<from>-<to>")
// and either re-classifies existing lattice members (moment frames) or
// synthesizes new members (diagonal braces, wall panels).
package lateral

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

// DefaultPier is the reserved pier label that survives wall
// regeneration.
const DefaultPier = "P1"

// PlacementError marks one bay table entry that could not be placed.
// It is raised before any sink mutation for that entry; other bays and
// floors proceed.
type PlacementError struct {
	Floor      string
	Descriptor string
	Err        error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("floor %q bay %q: %v", e.Floor, e.Descriptor, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// Placer holds the shared state of the lateral pass. Frame members and
// wall panels are indexed separately because their sink IDs may collide.
type Placer struct {
	Sink          sink.Sink
	Grids         *grid.System
	Index         *groups.Index
	WallIndex     *groups.Index
	Members       map[int64]*model.Member
	Walls         map[int64]*model.WallPanel
	RigidEndZones bool
	Log           zerolog.Logger
}

// baySpan is a fully resolved bay descriptor. The lateral direction is
// the axis the members run in: on an X grid (constant Y ordinate) they
// run in X, on a Y grid in Y. The bay range is measured on the crossing
// family's ordinate axis.
type baySpan struct {
	spec     model.BaySpec
	dir      model.Direction
	abscissa float64     // ordinate of the "on" grid line
	lo, hi   float64     // bay range on the crossing ordinate axis
	crossing grid.Family // family supplying the from/to labels
}

// at builds a model coordinate on the bay's grid line at the given
// running ordinate and elevation.
func (s baySpan) at(along, z float64) model.Point3 {
	if s.dir == model.DirectionX {
		return model.Point3{X: along, Y: s.abscissa, Z: z}
	}
	return model.Point3{X: s.abscissa, Y: along, Z: z}
}

// ordinates returns the crossing-family grid ordinates within the bay
// range, ascending. Consecutive pairs form the sub-bays.
func (s baySpan) ordinates(g *grid.System) []float64 {
	lines := g.LinesWithin(s.crossing, s.lo, s.hi)
	out := make([]float64, len(lines))
	for i, l := range lines {
		out[i] = l.Ordinate
	}
	return out
}

// resolve parses and resolves a raw descriptor without touching the
// sink, so malformed entries fail before any mutation.
func (p *Placer) resolve(floor, raw string) (baySpan, error) {
	spec, err := model.ParseBay(raw)
	if err != nil {
		return baySpan{}, &PlacementError{Floor: floor, Descriptor: raw, Err: err}
	}
	family, ok := p.Grids.FamilyOf(spec.On)
	if !ok {
		return baySpan{}, &PlacementError{Floor: floor, Descriptor: raw,
			Err: fmt.Errorf("grid label %q not defined in either family", spec.On)}
	}
	span := baySpan{spec: spec}
	if family == grid.FamilyX {
		span.dir = model.DirectionX
		span.crossing = grid.FamilyY
	} else {
		span.dir = model.DirectionY
		span.crossing = grid.FamilyX
	}
	span.abscissa, _ = p.Grids.Ordinate(family, spec.On)
	span.lo, span.hi, err = p.Grids.ResolveBay(spec.From, spec.To, span.crossing)
	if err != nil {
		return baySpan{}, &PlacementError{Floor: floor, Descriptor: raw, Err: err}
	}
	return span, nil
}

// PlaceMomentFrames re-classifies in-bay lattice members as moment
// frame members: columns become SFRS columns with the direction's
// column section (Y-direction columns rotated 90 degrees so strong-axis
// bending aligns with the lateral direction), girders and beams become
// SFRS beams with fully fixed ends. Returns one error per bad bay
// entry; good entries proceed.
func (p *Placer) PlaceMomentFrames(f *model.Floor, descriptors []string, sections model.MFSections) []error {
	var errs []error
	for _, raw := range descriptors {
		span, err := p.resolve(f.Name, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, id := range p.Index.Intersect(groups.OnGrid(span.spec.On), groups.ByFloor(f.Name)) {
			m, ok := p.Members[id]
			if !ok || m.Deleted || !m.InBay(span.dir, span.lo, span.hi) {
				continue
			}
			p.fixEnds(m)
			m.IsLateral = true
			m.Direction = span.dir
			p.Index.Add(groups.SFRS, id)

			switch {
			case m.Role == model.RoleColumn:
				p.promote(m, model.RoleSFRSColumn)
				if span.dir == model.DirectionX {
					p.setSection(m, sections.ColumnX)
				} else {
					p.setSection(m, sections.ColumnY)
					p.rotate(m, 90)
				}
				p.Index.Add(groups.Lateral("SFRS_column", span.dir), id)
			case m.Role == model.RoleGirder && span.dir == model.DirectionX:
				p.promote(m, model.RoleSFRSBeam)
				p.setSection(m, sections.BeamX)
				p.Index.Add(groups.Lateral("SFRS_beam", span.dir), id)
			case m.Role == model.RoleBeam && span.dir == model.DirectionY:
				p.promote(m, model.RoleSFRSBeam)
				p.setSection(m, sections.BeamY)
				p.Index.Add(groups.Lateral("SFRS_beam", span.dir), id)
			}
		}
	}
	return errs
}

// fixEnds overrides the pinned lattice default with fully fixed
// releases, applying the rigid-end-zone factor when enabled.
func (p *Placer) fixEnds(m *model.Member) {
	if m.ID == 0 {
		return
	}
	if err := p.Sink.SetReleases(m.ID, false); err != nil {
		p.Log.Warn().Err(err).Int64("id", m.ID).Msg("release assignment failed")
	}
	if p.RigidEndZones {
		if err := p.Sink.SetEndOffsets(m.ID, true); err != nil {
			p.Log.Warn().Err(err).Int64("id", m.ID).Msg("end offset assignment failed")
		}
	}
}

func (p *Placer) promote(m *model.Member, to model.Role) {
	if err := m.Promote(to); err != nil {
		p.Log.Warn().Err(err).Int64("id", m.ID).Msg("role promotion refused")
	}
}

func (p *Placer) setSection(m *model.Member, section string) {
	if m.ID == 0 || section == "" {
		return
	}
	if err := p.Sink.SetSection(m.ID, section); err != nil {
		p.Log.Warn().Err(err).Int64("id", m.ID).Str("section", section).Msg("section assignment failed")
		return
	}
	m.Section = section
}

func (p *Placer) rotate(m *model.Member, angle float64) {
	if m.ID == 0 {
		return
	}
	if err := p.Sink.RotateLocalAxis(m.ID, angle); err != nil {
		p.Log.Warn().Err(err).Int64("id", m.ID).Msg("local axis rotation failed")
	}
}
