package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/model"
)

// ErrNoState is returned by LoadState when no run has been saved.
var ErrNoState = errors.New("no saved state")

// LoadState rebuilds the run state from the database. The deleted tag
// is applied through the index's own deletion path so the reloaded
// index enforces the same never-rejoin rule as a live one.
func (s *Store) LoadState(ctx context.Context) (*generate.State, error) {
	st := &generate.State{
		FloorIDs:  make(map[string]int64),
		Members:   make(map[int64]*model.Member),
		Walls:     make(map[int64]*model.WallPanel),
		Index:     groups.New(),
		WallIndex: groups.New(),
	}

	err := s.db.QueryRowContext(ctx, "SELECT run_token FROM runs WHERE id = 1").Scan(&st.RunToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("load state: run: %w", err)
	}

	if st.Grids, err = s.loadGrids(ctx); err != nil {
		return nil, err
	}
	if err := s.loadFloors(ctx, st); err != nil {
		return nil, err
	}
	if err := s.loadMembers(ctx, st); err != nil {
		return nil, err
	}
	if err := s.loadWalls(ctx, st); err != nil {
		return nil, err
	}
	if err := s.loadTags(ctx, scopeFrame, st.Index); err != nil {
		return nil, err
	}
	if err := s.loadTags(ctx, scopeWall, st.WallIndex); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Store) loadGrids(ctx context.Context) (*grid.System, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT family, label, ordinate FROM grid_lines")
	if err != nil {
		return nil, fmt.Errorf("load state: grids: %w", err)
	}
	defer rows.Close()

	x := make(map[string]float64)
	y := make(map[string]float64)
	for rows.Next() {
		var family, label string
		var ord float64
		if err := rows.Scan(&family, &label, &ord); err != nil {
			return nil, fmt.Errorf("load state: grid row: %w", err)
		}
		if grid.Family(family) == grid.FamilyX {
			x[label] = ord
		} else {
			y[label] = ord
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load state: grids: %w", err)
	}
	return grid.NewSystem(x, y), nil
}

func (s *Store) loadFloors(ctx context.Context, st *generate.State) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, elevation, height, boundary, sd_load, live_load,
		       cladding_load, slab, girder, beam, column_section, sink_id
		FROM floors ORDER BY idx
	`)
	if err != nil {
		return fmt.Errorf("load state: floors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Floor
		var boundary string
		var sinkID int64
		if err := rows.Scan(&f.Name, &f.Elevation, &f.Height, &boundary,
			&f.SDLoad, &f.LiveLoad, &f.CladdingLoad,
			&f.Slab, &f.Girder, &f.Beam, &f.Column, &sinkID); err != nil {
			return fmt.Errorf("load state: floor row: %w", err)
		}
		if f.Boundary, err = model.ParsePolygon(boundary); err != nil {
			return fmt.Errorf("load state: floor %q boundary: %w", f.Name, err)
		}
		st.Floors = append(st.Floors, f)
		if sinkID != 0 {
			st.FloorIDs[f.Name] = sinkID
		}
	}
	return rows.Err()
}

func (s *Store) loadMembers(ctx context.Context, st *generate.State) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, story, section, ix, iy, iz, jx, jy, jz, is_lateral, direction, deleted
		FROM members
	`)
	if err != nil {
		return fmt.Errorf("load state: members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m model.Member
		var role, dir string
		if err := rows.Scan(&m.ID, &role, &m.Story, &m.Section,
			&m.I.X, &m.I.Y, &m.I.Z, &m.J.X, &m.J.Y, &m.J.Z,
			&m.IsLateral, &dir, &m.Deleted); err != nil {
			return fmt.Errorf("load state: member row: %w", err)
		}
		m.Role = model.Role(role)
		m.Direction = model.Direction(dir)
		st.Members[m.ID] = &m
	}
	return rows.Err()
}

func (s *Store) loadWalls(ctx context.Context, st *generate.State) error {
	rows, err := s.db.QueryContext(ctx, "SELECT id, story, section, direction, pier, vertices FROM walls")
	if err != nil {
		return fmt.Errorf("load state: walls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w model.WallPanel
		var dir, verts string
		if err := rows.Scan(&w.ID, &w.Story, &w.Section, &dir, &w.Pier, &verts); err != nil {
			return fmt.Errorf("load state: wall row: %w", err)
		}
		if err := json.Unmarshal([]byte(verts), &w.Vertices); err != nil {
			return fmt.Errorf("load state: wall %d vertices: %w", w.ID, err)
		}
		w.Direction = model.Direction(dir)
		st.Walls[w.ID] = &w
	}
	return rows.Err()
}

// loadTags replays tag rows into an index. Deleted rows go through
// MarkDeleted; ordering does not matter because Add refuses IDs already
// deleted and MarkDeleted strips IDs already added.
func (s *Store) loadTags(ctx context.Context, scope string, idx *groups.Index) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, value, member_id FROM tags WHERE scope = ?", scope)
	if err != nil {
		return fmt.Errorf("load state: tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, value string
		var id int64
		if err := rows.Scan(&kind, &value, &id); err != nil {
			return fmt.Errorf("load state: tag row: %w", err)
		}
		t := groups.Tag{Kind: groups.Kind(kind), Value: value}
		if t == groups.Deleted {
			idx.MarkDeleted(id)
		} else {
			idx.Add(t, id)
		}
	}
	return rows.Err()
}
