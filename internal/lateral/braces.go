package lateral

import (
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
)

// PlaceBraces synthesizes diagonal brace members for each bay
// descriptor, one sub-bay at a time between consecutive grid ordinates
// in the bay range. The topology per sub-bay is selected by the floor's
// brace configuration: SingleA and SingleB produce one diagonal each,
// V and Chevron two, X four half-height diagonals crossing at the
// sub-bay midpoint and mid-height.
func (p *Placer) PlaceBraces(f *model.Floor, descriptors []string, row model.BraceRow) []error {
	var errs []error
	for _, raw := range descriptors {
		span, err := p.resolve(f.Name, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		section, config := row.SectionX, row.ConfigX
		if span.dir == model.DirectionY {
			section, config = row.SectionY, row.ConfigY
		}
		for _, pair := range bracePairs(config, span, span.ordinates(p.Grids), f.Below(), f.Elevation) {
			p.addBrace(f.Name, span, section, pair[0], pair[1])
		}
	}
	return errs
}

// bracePairs lays out the diagonal endpoints for every sub-bay of the
// span. zlo is the elevation of the floor below, zhi the current floor.
func bracePairs(config model.BraceConfig, span baySpan, ords []float64, zlo, zhi float64) [][2]model.Point3 {
	var out [][2]model.Point3
	for k := 0; k+1 < len(ords); k++ {
		s, e := ords[k], ords[k+1]
		mid := (s + e) / 2
		zmid := (zlo + zhi) / 2
		switch config {
		case model.BraceSingleA:
			out = append(out, [2]model.Point3{span.at(s, zlo), span.at(e, zhi)})
		case model.BraceSingleB:
			out = append(out, [2]model.Point3{span.at(e, zlo), span.at(s, zhi)})
		case model.BraceV:
			out = append(out,
				[2]model.Point3{span.at(s, zhi), span.at(mid, zlo)},
				[2]model.Point3{span.at(mid, zlo), span.at(e, zhi)})
		case model.BraceChevron:
			out = append(out,
				[2]model.Point3{span.at(s, zlo), span.at(mid, zhi)},
				[2]model.Point3{span.at(mid, zhi), span.at(e, zlo)})
		case model.BraceX:
			out = append(out,
				[2]model.Point3{span.at(s, zlo), span.at(mid, zmid)},
				[2]model.Point3{span.at(mid, zmid), span.at(e, zhi)},
				[2]model.Point3{span.at(s, zhi), span.at(mid, zmid)},
				[2]model.Point3{span.at(mid, zmid), span.at(e, zlo)})
		}
	}
	return out
}

// addBrace creates one diagonal through the sink with fixed ends and
// registers it under the floor, grid, and lateral tags.
func (p *Placer) addBrace(story string, span baySpan, section string, i, j model.Point3) {
	m := &model.Member{
		Role: model.RoleSFRSBrace, Story: story, Section: section,
		I: i, J: j, IsLateral: true, Direction: span.dir,
	}
	id, err := p.Sink.CreateFrame(i, j, section)
	if err != nil {
		p.Log.Warn().Err(err).Str("story", story).
			Stringer("i", i).Stringer("j", j).
			Msg("brace creation failed")
		return
	}
	m.ID = id
	p.Members[id] = m
	p.fixEnds(m)

	p.Index.Add(groups.ByFloor(story), id)
	p.Index.Add(groups.OnGrid(span.spec.On), id)
	p.Index.Add(groups.SFRS, id)
	p.Index.Add(groups.Lateral("SFRS_brace", span.dir), id)
}
