// Package resync re-applies section assignments to an already generated
// model. It never creates or deletes geometry: the saved membership
// indexes say which sink IDs belong to which role, floor, and lateral
// system, and the current input tables say which sections they should
// carry. Running it twice with the same input is a no-op on the second
// pass apart from repeated sink calls.
package resync

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

// Updater applies section updates from a config to saved state.
type Updater struct {
	Sink sink.Sink
	Log  zerolog.Logger
}

// Apply pushes the config's sections onto the members recorded in the
// state. Floors are matched by name; a config floor with no saved
// counterpart is an error because its rows have nowhere to land, and
// a lateral table must be empty or carry one row per config floor.
func (u *Updater) Apply(st *generate.State, cfg generate.Config) error {
	for name, n := range map[string]int{
		"moment frame": len(cfg.MomentFrames),
		"brace":        len(cfg.Braces),
		"wall":         len(cfg.Walls),
	} {
		if n != 0 && n != len(cfg.Floors) {
			return fmt.Errorf("resync: %s table has %d rows, want one per floor", name, n)
		}
	}

	byName := make(map[string]int, len(st.Floors))
	for i, f := range st.Floors {
		byName[f.Name] = i
	}
	for i := range cfg.Floors {
		f := &cfg.Floors[i]
		si, ok := byName[f.Name]
		if !ok {
			return fmt.Errorf("resync: floor %q not present in saved state", f.Name)
		}

		u.gravity(st, f)
		if len(cfg.MomentFrames) > 0 {
			u.momentFrames(st, f, cfg.MomentFrames[i])
		}
		if len(cfg.Braces) > 0 {
			u.braces(st, f, cfg.Braces[i])
		}
		if len(cfg.Walls) > 0 {
			u.walls(st, f, cfg.Walls[i])
		}
		st.Floors[si].Slab = f.Slab
		st.Floors[si].Girder = f.Girder
		st.Floors[si].Beam = f.Beam
		st.Floors[si].Column = f.Column
	}
	return nil
}

// gravity updates the plain column, girder, and beam sections. Promoted
// members left the gravity role sets, so the lateral tables own them.
func (u *Updater) gravity(st *generate.State, f *model.Floor) {
	for role, section := range map[model.Role]string{
		model.RoleColumn: f.Column,
		model.RoleGirder: f.Girder,
		model.RoleBeam:   f.Beam,
	} {
		u.setFrames(st, f.Name, groups.ByRole(role), section)
	}
}

func (u *Updater) momentFrames(st *generate.State, f *model.Floor, mf model.MFSections) {
	u.setFrames(st, f.Name, groups.Lateral("SFRS_column", model.DirectionX), mf.ColumnX)
	u.setFrames(st, f.Name, groups.Lateral("SFRS_column", model.DirectionY), mf.ColumnY)
	u.setFrames(st, f.Name, groups.Lateral("SFRS_beam", model.DirectionX), mf.BeamX)
	u.setFrames(st, f.Name, groups.Lateral("SFRS_beam", model.DirectionY), mf.BeamY)
}

func (u *Updater) braces(st *generate.State, f *model.Floor, row model.BraceRow) {
	u.setFrames(st, f.Name, groups.Lateral("SFRS_brace", model.DirectionX), row.SectionX)
	u.setFrames(st, f.Name, groups.Lateral("SFRS_brace", model.DirectionY), row.SectionY)
}

func (u *Updater) walls(st *generate.State, f *model.Floor, row model.WallRow) {
	for dir, section := range map[model.Direction]string{
		model.DirectionX: row.SectionX,
		model.DirectionY: row.SectionY,
	} {
		if section == "" {
			continue
		}
		for _, id := range st.WallIndex.Intersect(groups.ByFloor(f.Name), groups.Lateral("SFRS_wall", dir)) {
			if err := u.Sink.SetWallSection(id, section); err != nil {
				u.Log.Warn().Err(err).Int64("id", id).Msg("wall section update failed")
				continue
			}
			if w := st.Walls[id]; w != nil {
				w.Section = section
			}
		}
	}
}

// setFrames assigns one section to every live frame member under the
// tag on the floor, keeping the member records in step with the sink.
func (u *Updater) setFrames(st *generate.State, floor string, tag groups.Tag, section string) {
	if section == "" {
		return
	}
	for _, id := range st.Index.Intersect(groups.ByFloor(floor), tag) {
		m := st.Members[id]
		if m == nil || m.Deleted {
			continue
		}
		if err := u.Sink.SetSection(id, section); err != nil {
			u.Log.Warn().Err(err).Int64("id", id).Msg("section update failed")
			continue
		}
		m.Section = section
	}
}
