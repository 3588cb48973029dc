// Package lattice builds the full orthogonal gravity-frame lattice from
// the grid system and floor catalog, then trims it back to each floor's
// boundary polygon. The lattice is generated unconditionally for the
// whole grid extent: trimming afterwards is simpler and less error-prone
// than computing occupancy per irregular floor shape up front.
package lattice

import (
	"github.com/rs/zerolog"

	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

// Generator emits the gravity system for one floor at a time and
// registers every created member in the shared index.
type Generator struct {
	Sink    sink.Sink
	Grids   *grid.System
	Index   *groups.Index
	Members map[int64]*model.Member
	Infill  int // interior beams per sub-bay, 0-4
	Log     zerolog.Logger
}

// GenerateFloor creates the columns, girders, beams, and infill beams
// for one floor. Columns span from the floor below up to this floor;
// horizontal framing sits at the floor elevation, pinned, inserted at
// top center.
func (g *Generator) GenerateFloor(f *model.Floor) {
	zlo, zhi := f.Below(), f.Elevation
	xlines := g.Grids.XLines()
	ylines := g.Grids.YLines()

	// Columns: one per grid intersection.
	for _, yl := range ylines {
		for _, xl := range xlines {
			m := g.addFrame(model.RoleColumn, f.Name, f.Column,
				model.Point3{X: yl.Ordinate, Y: xl.Ordinate, Z: zlo},
				model.Point3{X: yl.Ordinate, Y: xl.Ordinate, Z: zhi})
			g.register(m, groups.OnGrid(xl.Label), groups.OnGrid(yl.Label))
		}
	}

	// Girders run in the X direction along each X grid, one per
	// adjacent pair of Y-grid ordinates.
	for _, xl := range xlines {
		for k := 0; k+1 < len(ylines); k++ {
			m := g.addFrame(model.RoleGirder, f.Name, f.Girder,
				model.Point3{X: ylines[k].Ordinate, Y: xl.Ordinate, Z: zhi},
				model.Point3{X: ylines[k+1].Ordinate, Y: xl.Ordinate, Z: zhi})
			g.pinTopCenter(m)
			g.register(m, groups.OnGrid(xl.Label))
		}
	}

	// Beams run in the Y direction along each Y grid, one per adjacent
	// pair of X-grid ordinates.
	for _, yl := range ylines {
		for k := 0; k+1 < len(xlines); k++ {
			m := g.addFrame(model.RoleBeam, f.Name, f.Beam,
				model.Point3{X: yl.Ordinate, Y: xlines[k].Ordinate, Z: zhi},
				model.Point3{X: yl.Ordinate, Y: xlines[k+1].Ordinate, Z: zhi})
			g.pinTopCenter(m)
			g.register(m, groups.OnGrid(yl.Label))
		}
	}

	// Infill beams subdivide each sub-bay at fractional offsets
	// (k+1)/(n+1) of the bay width. They lie on no grid line.
	for yi := 0; yi+1 < len(ylines); yi++ {
		for xi := 0; xi+1 < len(xlines); xi++ {
			width := ylines[yi+1].Ordinate - ylines[yi].Ordinate
			for k := 0; k < g.Infill; k++ {
				x := ylines[yi].Ordinate + float64(k+1)*width/float64(g.Infill+1)
				m := g.addFrame(model.RoleBeam, f.Name, f.Beam,
					model.Point3{X: x, Y: xlines[xi].Ordinate, Z: zhi},
					model.Point3{X: x, Y: xlines[xi+1].Ordinate, Z: zhi})
				g.pinTopCenter(m)
				g.register(m)
			}
		}
	}
}

// addFrame creates a frame object through the sink. A failed creation
// is logged and leaves the member with the null ID; such members are
// never indexed and every later mutation on them is skipped.
func (g *Generator) addFrame(role model.Role, story, section string, i, j model.Point3) *model.Member {
	m := &model.Member{Role: role, Story: story, Section: section, I: i, J: j}
	id, err := g.Sink.CreateFrame(i, j, section)
	if err != nil {
		g.Log.Warn().Err(err).
			Str("role", string(role)).Str("story", story).
			Stringer("i", i).Stringer("j", j).
			Msg("frame creation failed")
		return m
	}
	m.ID = id
	g.Members[id] = m
	return m
}

// pinTopCenter applies the horizontal-framing end conditions: pinned
// releases and the top-center insertion point.
func (g *Generator) pinTopCenter(m *model.Member) {
	if m.ID == 0 {
		return
	}
	if err := g.Sink.SetReleases(m.ID, true); err != nil {
		g.Log.Warn().Err(err).Int64("id", m.ID).Msg("release assignment failed")
	}
	if err := g.Sink.SetInsertionPoint(m.ID, model.CardinalTopCenter); err != nil {
		g.Log.Warn().Err(err).Int64("id", m.ID).Msg("insertion point assignment failed")
	}
}

// register adds the member to its role and floor tags plus any grid
// tags for lines it lies on.
func (g *Generator) register(m *model.Member, onGrids ...groups.Tag) {
	if m.ID == 0 {
		return
	}
	g.Index.Add(groups.ByRole(m.Role), m.ID)
	g.Index.Add(groups.ByFloor(m.Story), m.ID)
	for _, t := range onGrids {
		g.Index.Add(t, m.ID)
	}
}
