package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
)

// Tag scopes separating the two sink ID spaces.
const (
	scopeFrame = "frame"
	scopeWall  = "wall"
)

// SaveState replaces the persisted state with the given run. The write
// is a single transaction: a reload sees either the previous run or the
// new one, never a mix.
func (s *Store) SaveState(ctx context.Context, st *generate.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tags", "walls", "members", "floors", "grid_lines", "runs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("save state: clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, run_token) VALUES (1, ?)", st.RunToken); err != nil {
		return fmt.Errorf("save state: run: %w", err)
	}

	for _, family := range []grid.Family{grid.FamilyX, grid.FamilyY} {
		for _, l := range st.Grids.Lines(family) {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO grid_lines (family, label, ordinate) VALUES (?, ?, ?)",
				string(family), l.Label, l.Ordinate); err != nil {
				return fmt.Errorf("save state: grid line %s: %w", l.Label, err)
			}
		}
	}

	for i, f := range st.Floors {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO floors
			(idx, name, elevation, height, boundary, sd_load, live_load,
			 cladding_load, slab, girder, beam, column_section, sink_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			i, f.Name, f.Elevation, f.Height, model.FormatPolygon(f.Boundary),
			f.SDLoad, f.LiveLoad, f.CladdingLoad,
			f.Slab, f.Girder, f.Beam, f.Column, st.FloorIDs[f.Name],
		); err != nil {
			return fmt.Errorf("save state: floor %q: %w", f.Name, err)
		}
	}

	for _, m := range st.Members {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO members
			(id, role, story, section, ix, iy, iz, jx, jy, jz, is_lateral, direction, deleted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			m.ID, string(m.Role), m.Story, m.Section,
			m.I.X, m.I.Y, m.I.Z, m.J.X, m.J.Y, m.J.Z,
			m.IsLateral, string(m.Direction), m.Deleted,
		); err != nil {
			return fmt.Errorf("save state: member %d: %w", m.ID, err)
		}
	}

	for _, w := range st.Walls {
		verts, err := json.Marshal(w.Vertices)
		if err != nil {
			return fmt.Errorf("save state: wall %d vertices: %w", w.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO walls (id, story, section, direction, pier, vertices)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			w.ID, w.Story, w.Section, string(w.Direction), w.Pier, string(verts),
		); err != nil {
			return fmt.Errorf("save state: wall %d: %w", w.ID, err)
		}
	}

	if err := writeTags(ctx, tx, scopeFrame, st.Index); err != nil {
		return err
	}
	if err := writeTags(ctx, tx, scopeWall, st.WallIndex); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save state: commit: %w", err)
	}
	return nil
}

func writeTags(ctx context.Context, tx *sql.Tx, scope string, idx *groups.Index) error {
	for _, t := range idx.Tags() {
		for _, id := range idx.Set(t) {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO tags (scope, kind, value, member_id) VALUES (?, ?, ?, ?)",
				scope, string(t.Kind), t.Value, id); err != nil {
				return fmt.Errorf("save state: tag %s/%s: %w", t.Kind, t.Value, err)
			}
		}
	}
	return nil
}
