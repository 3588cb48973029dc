// Package generate orchestrates a full model generation run. Floors are
// processed strictly roof to base: the gravity lattice and index must be
// complete before boundary trimming, and trimming before lateral
// placement, because each step queries the state the previous one built.
package generate

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/groups"
	"github.com/edkwan/framegen/internal/lateral"
	"github.com/edkwan/framegen/internal/lattice"
	"github.com/edkwan/framegen/internal/model"
	"github.com/edkwan/framegen/internal/sink"
)

// Load pattern names applied to floor diaphragms.
const (
	LoadPatternSDL  = "Dead (Superimposed)"
	LoadPatternLive = "Live"
)

// Config is the fully parsed tabular input for one run. The lateral
// tables are aligned with Floors by index; an empty table disables
// that lateral system.
type Config struct {
	Floors       []model.Floor
	Grids        *grid.System
	Bays         [][]string // per-floor SFRS bay descriptors
	MomentFrames []model.MFSections
	Braces       []model.BraceRow
	Walls        []model.WallRow
	Options      model.Options
}

// State is everything a run produces besides the sink mutations: the
// member and wall records and both membership indexes. It is persisted
// by the store and later re-loaded by the resync pass.
type State struct {
	RunToken  string
	Floors    []model.Floor
	Grids     *grid.System
	FloorIDs  map[string]int64
	Members   map[int64]*model.Member
	Walls     map[int64]*model.WallPanel
	Index     *groups.Index
	WallIndex *groups.Index

	// Errors collects the non-fatal per-bay and per-floor failures the
	// run proceeded past.
	Errors []error
}

// Run generates the complete model into the sink. A returned error
// means the input failed validation and nothing was mutated; individual
// bay or trim failures are collected in State.Errors instead.
func Run(s sink.Sink, cfg Config, log zerolog.Logger) (*State, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	st := &State{
		RunToken:  uuid.Must(uuid.NewV7()).String(),
		Floors:    cfg.Floors,
		Grids:     cfg.Grids,
		FloorIDs:  make(map[string]int64),
		Members:   make(map[int64]*model.Member),
		Walls:     make(map[int64]*model.WallPanel),
		Index:     groups.New(),
		WallIndex: groups.New(),
	}
	log = log.With().Str("run", st.RunToken).Logger()

	log.Info().Msg("defining stories and grids")
	defineStories(s, cfg, log)
	defineGrids(s, cfg.Grids, log)

	log.Info().Msg("creating floors")
	createFloors(s, cfg, st, log)

	log.Info().Msg("generating frame lattice")
	gen := &lattice.Generator{
		Sink: s, Grids: cfg.Grids, Index: st.Index,
		Members: st.Members, Infill: cfg.Options.InfillBeams, Log: log,
	}
	for i := range cfg.Floors {
		log.Debug().Str("floor", cfg.Floors[i].Name).Msg("floor lattice")
		gen.GenerateFloor(&cfg.Floors[i])
	}

	log.Info().Msg("trimming to floor boundaries")
	trim := &lattice.Trimmer{Sink: s, Index: st.Index, Members: st.Members, Log: log}
	for i := range cfg.Floors {
		n, err := trim.TrimFloor(&cfg.Floors[i])
		if err != nil {
			log.Error().Err(err).Str("floor", cfg.Floors[i].Name).Msg("trim step aborted")
			st.Errors = append(st.Errors, err)
			continue
		}
		log.Debug().Str("floor", cfg.Floors[i].Name).Int("deleted", n).Msg("floor trimmed")
	}

	placeLateral(s, cfg, st, log)

	if cfg.Options.BaseFixity == model.FixityFixed {
		restrainBase(s, cfg, log)
	}

	syncGroups(s, st, log)
	log.Info().Int("members", len(st.Members)).Int("walls", len(st.Walls)).Msg("model generated")
	return st, nil
}

func validate(cfg Config) error {
	if len(cfg.Floors) == 0 {
		return fmt.Errorf("no floors defined")
	}
	if cfg.Grids == nil || len(cfg.Grids.XLines()) == 0 || len(cfg.Grids.YLines()) == 0 {
		return fmt.Errorf("both grid families must define at least one line")
	}
	for i := range cfg.Floors {
		f := &cfg.Floors[i]
		if f.Height <= 0 {
			return fmt.Errorf("floor %q: height must be positive", f.Name)
		}
		if i > 0 && f.Elevation >= cfg.Floors[i-1].Elevation {
			return fmt.Errorf("floor %q: elevations must strictly decrease roof to base", f.Name)
		}
		if len(f.Boundary) < 3 {
			return fmt.Errorf("floor %q: boundary needs at least 3 vertices", f.Name)
		}
	}
	if n := cfg.Options.InfillBeams; n < 0 || n > 4 {
		return fmt.Errorf("infill beam count %d out of range 0-4", n)
	}
	for name, table := range map[string]int{
		"moment frame": len(cfg.MomentFrames),
		"brace":        len(cfg.Braces),
		"wall":         len(cfg.Walls),
	} {
		if table != 0 && table != len(cfg.Floors) {
			return fmt.Errorf("%s table has %d rows, want one per floor", name, table)
		}
	}
	return nil
}

// defineStories pushes the story table base to roof; the catalog is
// ordered roof to base, so both slices are reversed.
func defineStories(s sink.Sink, cfg Config, log zerolog.Logger) {
	n := len(cfg.Floors)
	names := make([]string, n)
	heights := make([]float64, n)
	for i, f := range cfg.Floors {
		names[n-1-i] = f.Name
		heights[n-1-i] = f.Height
	}
	base := cfg.Floors[n-1].Below()
	if err := s.DefineStories(base, names, heights); err != nil {
		log.Warn().Err(err).Msg("story definition failed")
	}
}

func defineGrids(s sink.Sink, gs *grid.System, log zerolog.Logger) {
	for _, family := range []grid.Family{grid.FamilyX, grid.FamilyY} {
		for _, l := range gs.Lines(family) {
			if err := s.DefineGridLine(family, l.Label, l.Ordinate); err != nil {
				log.Warn().Err(err).Str("label", l.Label).Msg("grid definition failed")
			}
		}
	}
}

// createFloors pushes one diaphragm per floor. The cladding line load
// is folded into the superimposed dead load by distributing it over the
// boundary area: SDL += cladding * perimeter / area.
func createFloors(s sink.Sink, cfg Config, st *State, log zerolog.Logger) {
	for i := range cfg.Floors {
		f := &cfg.Floors[i]
		sdl := f.SDLoad
		if area := lattice.Area(f.Boundary); area > 0 {
			sdl += f.CladdingLoad * lattice.Perimeter(f.Boundary) / area
		}
		id, err := s.CreateFloor(f.Boundary, f.Elevation, f.Slab)
		if err != nil {
			log.Warn().Err(err).Str("floor", f.Name).Msg("floor creation failed")
			continue
		}
		st.FloorIDs[f.Name] = id
		if err := s.SetDiaphragm(id, cfg.Options.Diaphragm); err != nil {
			log.Warn().Err(err).Str("floor", f.Name).Msg("diaphragm assignment failed")
		}
		if err := s.SetUniformLoad(id, LoadPatternSDL, sdl); err != nil {
			log.Warn().Err(err).Str("floor", f.Name).Msg("SDL assignment failed")
		}
		if err := s.SetUniformLoad(id, LoadPatternLive, f.LiveLoad); err != nil {
			log.Warn().Err(err).Str("floor", f.Name).Msg("live load assignment failed")
		}
	}
}

func placeLateral(s sink.Sink, cfg Config, st *State, log zerolog.Logger) {
	placer := &lateral.Placer{
		Sink: s, Grids: cfg.Grids,
		Index: st.Index, WallIndex: st.WallIndex,
		Members: st.Members, Walls: st.Walls,
		RigidEndZones: cfg.Options.RigidEndZones, Log: log,
	}
	bays := func(i int) []string {
		if i < len(cfg.Bays) {
			return cfg.Bays[i]
		}
		return nil
	}

	if len(cfg.MomentFrames) > 0 {
		log.Info().Msg("placing moment frames")
		for i := range cfg.Floors {
			st.Errors = append(st.Errors,
				placer.PlaceMomentFrames(&cfg.Floors[i], bays(i), cfg.MomentFrames[i])...)
		}
	}
	if len(cfg.Braces) > 0 {
		log.Info().Msg("placing braces")
		for i := range cfg.Floors {
			st.Errors = append(st.Errors,
				placer.PlaceBraces(&cfg.Floors[i], bays(i), cfg.Braces[i])...)
		}
	}
	if len(cfg.Walls) > 0 {
		log.Info().Msg("placing walls")
		if err := placer.ResetPiers(); err != nil {
			log.Warn().Err(err).Msg("pier reset failed")
		}
		for i := range cfg.Floors {
			st.Errors = append(st.Errors,
				placer.PlaceWalls(&cfg.Floors[i], bays(i), cfg.Walls[i])...)
		}
	}
}

// restrainBase fixes every joint at the base elevation. The sink pins
// bases by default, so this only runs for the fixed option.
func restrainBase(s sink.Sink, cfg Config, log zerolog.Logger) {
	base := cfg.Floors[len(cfg.Floors)-1].Below()
	points, err := s.Points()
	if err != nil {
		log.Warn().Err(err).Msg("point enumeration failed")
		return
	}
	for _, p := range points {
		if p.Z != base {
			continue
		}
		if err := s.SetPointRestraint(p.ID, true); err != nil {
			log.Warn().Err(err).Int64("point", p.ID).Msg("base restraint failed")
		}
	}
}
