package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/logging"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

func basicConfig() Config {
	return Config{
		Floors: []model.Floor{{
			Name: "Roof", Elevation: 144, Height: 144,
			Boundary: []model.Point2{{X: 0, Y: 0}, {X: 400, Y: 0}, {X: 400, Y: 300}, {X: 0, Y: 300}},
			Slab:     "SLAB8", Girder: "W24X55", Beam: "W16X26", Column: "W14X90",
		}},
		Grids: grid.NewSystem(
			map[string]float64{"1": 0, "2": 300},
			map[string]float64{"A": 0, "B": 400},
		),
		Options: model.DefaultOptions(),
	}
}

func TestRunBasic(t *testing.T) {
	mem := sink.NewMemory()
	st, err := Run(mem, basicConfig(), logging.Nop())
	require.NoError(t, err)
	require.Empty(t, st.Errors)

	assert.NotEmpty(t, st.RunToken)
	assert.Equal(t, int64(1), st.FloorIDs["Roof"])
	assert.Len(t, st.Members, 8)
	assert.Empty(t, st.Walls)
	assert.Equal(t, 8, mem.ActiveFrames())

	assert.Equal(t, 4, st.Index.Size(groups.ByRole(model.RoleColumn)))
	assert.Equal(t, 2, st.Index.Size(groups.ByRole(model.RoleGirder)))
	assert.Equal(t, 2, st.Index.Size(groups.ByRole(model.RoleBeam)))
	assert.Zero(t, st.Index.Size(groups.Deleted))
	assert.Zero(t, st.Index.Size(groups.SFRS))

	// Diaphragm and load patterns land on the floor area.
	floor := mem.Areas[1]
	require.NotNil(t, floor)
	assert.Equal(t, model.DiaphragmRigid, floor.Diaphragm)
	assert.Contains(t, floor.Loads, LoadPatternSDL)
	assert.Contains(t, floor.Loads, LoadPatternLive)
}

func TestRunTokensAreUnique(t *testing.T) {
	a, err := Run(sink.NewMemory(), basicConfig(), logging.Nop())
	require.NoError(t, err)
	b, err := Run(sink.NewMemory(), basicConfig(), logging.Nop())
	require.NoError(t, err)
	assert.NotEqual(t, a.RunToken, b.RunToken)
}

func TestRunCladdingFoldsIntoSDL(t *testing.T) {
	cfg := basicConfig()
	cfg.Floors[0].SDLoad = 0.001
	cfg.Floors[0].CladdingLoad = 0.12

	mem := sink.NewMemory()
	_, err := Run(mem, cfg, logging.Nop())
	require.NoError(t, err)

	// SDL += cladding * perimeter / area = 0.12 * 1400 / 120000.
	want := 0.001 + 0.12*1400/120000
	assert.InDelta(t, want, mem.Areas[1].Loads[LoadPatternSDL], 1e-12)
	assert.Zero(t, mem.Areas[1].Loads[LoadPatternLive])
}

func TestRunFixedBaseRestraints(t *testing.T) {
	cfg := basicConfig()
	cfg.Options.BaseFixity = model.FixityFixed

	mem := sink.NewMemory()
	_, err := Run(mem, cfg, logging.Nop())
	require.NoError(t, err)

	points, perr := mem.Points()
	require.NoError(t, perr)
	restrained := 0
	for _, p := range points {
		if mem.Restrained(p.ID) {
			assert.Zero(t, p.Z, "only base joints get fixed")
			restrained++
		}
	}
	assert.Equal(t, 4, restrained, "one joint per column base")
}

func TestRunTrimContinuesPastBadFloor(t *testing.T) {
	cfg := basicConfig()
	second := cfg.Floors[0]
	second.Name = "L2"
	second.Elevation = 0
	second.Height = 144
	// Self-intersecting boundary aborts this floor's trim only.
	second.Boundary = []model.Point2{{X: 0, Y: 0}, {X: 400, Y: 300}, {X: 400, Y: 0}, {X: 0, Y: 300}}
	cfg.Floors = append(cfg.Floors, second)

	st, err := Run(sink.NewMemory(), cfg, logging.Nop())
	require.NoError(t, err)
	require.Len(t, st.Errors, 1)
	assert.ErrorContains(t, st.Errors[0], "not simple")
	assert.Len(t, st.Members, 16, "the other floor generated normally")
}

func TestRunLateralSystems(t *testing.T) {
	cfg := basicConfig()
	cfg.Bays = [][]string{{"1;A-B", "A;1-2"}}
	cfg.MomentFrames = []model.MFSections{{ColumnX: "W14X132", BeamX: "W24X76", ColumnY: "W14X145", BeamY: "W27X84"}}
	cfg.Braces = []model.BraceRow{{SectionX: "HSS8X8X1/2", ConfigX: model.BraceX, SectionY: "HSS6X6X3/8", ConfigY: model.BraceV}}
	cfg.Walls = []model.WallRow{{SectionX: "WALL12", SectionY: "WALL10"}}

	mem := sink.NewMemory()
	st, err := Run(mem, cfg, logging.Nop())
	require.NoError(t, err)
	require.Empty(t, st.Errors)

	// Moment frames promote the 2 columns and girder on grid 1, then the
	// grid A bay picks up only the corner not already promoted plus the
	// beam; the X bay adds 4 diagonals and the Y bay 2; one wall panel
	// per bay.
	assert.Equal(t, 2, st.Index.Size(groups.Lateral("SFRS_column", model.DirectionX)))
	assert.Equal(t, 1, st.Index.Size(groups.Lateral("SFRS_column", model.DirectionY)))
	assert.Equal(t, 4, st.Index.Size(groups.Lateral("SFRS_brace", model.DirectionX)))
	assert.Equal(t, 2, st.Index.Size(groups.Lateral("SFRS_brace", model.DirectionY)))
	assert.Equal(t, 1, st.WallIndex.Size(groups.Lateral("SFRS_wall", model.DirectionX)))
	assert.Equal(t, 1, st.WallIndex.Size(groups.Lateral("SFRS_wall", model.DirectionY)))
	assert.Len(t, st.Walls, 2)

	// Sink-side groups were recreated and filled.
	lateralAssigned := 0
	for _, f := range mem.Frames {
		for _, g := range f.Groups {
			if g == GroupAllLateral {
				lateralAssigned++
			}
		}
	}
	assert.Equal(t, st.Index.Size(groups.SFRS), lateralAssigned)
}

func TestRunEmptyLateralTables(t *testing.T) {
	cfg := basicConfig()
	cfg.Bays = [][]string{{"1;A-B"}}
	// Empty but non-nil tables disable lateral placement outright.
	cfg.MomentFrames = []model.MFSections{}
	cfg.Braces = []model.BraceRow{}
	cfg.Walls = []model.WallRow{}

	st, err := Run(sink.NewMemory(), cfg, logging.Nop())
	require.NoError(t, err)
	require.Empty(t, st.Errors)
	assert.Zero(t, st.Index.Size(groups.SFRS))
	assert.Empty(t, st.Walls)
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no floors", func(c *Config) { c.Floors = nil }},
		{"missing grid family", func(c *Config) {
			c.Grids = grid.NewSystem(map[string]float64{"1": 0}, nil)
		}},
		{"non-positive height", func(c *Config) { c.Floors[0].Height = 0 }},
		{"too few boundary vertices", func(c *Config) {
			c.Floors[0].Boundary = c.Floors[0].Boundary[:2]
		}},
		{"infill out of range", func(c *Config) { c.Options.InfillBeams = 5 }},
		{"table length mismatch", func(c *Config) {
			c.Braces = []model.BraceRow{{}, {}}
		}},
		{"non-decreasing elevations", func(c *Config) {
			second := c.Floors[0]
			second.Name = "L2"
			c.Floors = append(c.Floors, second)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := basicConfig()
			tt.mutate(&cfg)
			mem := sink.NewMemory()
			_, err := Run(mem, cfg, logging.Nop())
			require.Error(t, err)
			assert.Empty(t, mem.Ops, "validation failures mutate nothing")
		})
	}
}
