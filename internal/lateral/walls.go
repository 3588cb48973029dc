package lateral

import (
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
)

// ResetPiers deletes every pier label except the reserved default, so
// regenerating walls never duplicates pier groups across re-runs. Call
// once before the wall pass.
func (p *Placer) ResetPiers() error {
	piers, err := p.Sink.ListPiers()
	if err != nil {
		return err
	}
	for _, name := range piers {
		if name == DefaultPier {
			continue
		}
		if err := p.Sink.DeletePier(name); err != nil {
			p.Log.Warn().Err(err).Str("pier", name).Msg("pier deletion failed")
		}
	}
	return nil
}

// PlaceWalls creates one vertical 4-vertex panel per sub-bay spanning
// from the floor below up to the current floor. All panels of one bay
// descriptor share a pier label derived from the floor and descriptor,
// so the sink analyzes them as a single wall element.
func (p *Placer) PlaceWalls(f *model.Floor, descriptors []string, row model.WallRow) []error {
	var errs []error
	for _, raw := range descriptors {
		span, err := p.resolve(f.Name, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		section := row.SectionX
		if span.dir == model.DirectionY {
			section = row.SectionY
		}
		pier := f.Name + "_" + span.spec.Raw
		ords := span.ordinates(p.Grids)
		for k := 0; k+1 < len(ords); k++ {
			s, e := ords[k], ords[k+1]
			vertices := [4]model.Point3{
				span.at(s, f.Elevation),
				span.at(e, f.Elevation),
				span.at(e, f.Below()),
				span.at(s, f.Below()),
			}
			p.addWall(f.Name, span, section, pier, vertices)
		}
	}
	return errs
}

func (p *Placer) addWall(story string, span baySpan, section, pier string, vertices [4]model.Point3) {
	id, err := p.Sink.CreateWall(vertices, section)
	if err != nil {
		p.Log.Warn().Err(err).Str("story", story).Str("pier", pier).
			Msg("wall creation failed")
		return
	}
	if err := p.Sink.SetPier(id, pier); err != nil {
		p.Log.Warn().Err(err).Int64("id", id).Str("pier", pier).
			Msg("pier assignment failed")
	}
	p.Walls[id] = &model.WallPanel{
		ID: id, Story: story, Vertices: vertices,
		Section: section, Direction: span.dir, Pier: pier,
	}
	p.WallIndex.Add(groups.ByFloor(story), id)
	p.WallIndex.Add(groups.OnGrid(span.spec.On), id)
	p.WallIndex.Add(groups.Lateral("SFRS_wall", span.dir), id)
}
