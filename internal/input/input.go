// Package input loads the tabular project file: six logical tables
// (floors, two grid families, SFRS bay descriptors, lateral section
// sizes) plus model options. The YAML document is validated against an
// embedded CUE schema before decoding, and workbook units (feet, psf,
// plf) are converted to model units (inches, kip) at this boundary.
package input

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/model"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for load failures.
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeSchema   = "SCHEMA"
	ErrCodeDecode   = "DECODE"
	ErrCodeTable    = "TABLE"
)

// LoadError reports a failure while reading or validating the project
// file. All load errors are fatal: nothing reaches the sink.
type LoadError struct {
	Code    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Unit conversions from workbook units to model units (kip, in).
const (
	feet     = 12.0
	psfToKSI = 1.0 / 1000.0 / 144.0 // lb/ft² -> kip/in²
	plfToKLI = 1.0 / 1000.0 / 12.0  // lb/ft  -> kip/in
)

type projectFile struct {
	Floors []floorRow       `yaml:"floors"`
	Grids  gridTables       `yaml:"grids"`
	Bays   []bayRow         `yaml:"sfrs_bays"`
	MF     []momentFrameRow `yaml:"moment_frames"`
	Braces []braceRow       `yaml:"braces"`
	Walls  []wallRow        `yaml:"walls"`
	Opts   optionsRow       `yaml:"options"`
}

type floorRow struct {
	Name         string  `yaml:"name"`
	Height       float64 `yaml:"height"`        // ft
	Elevation    float64 `yaml:"elevation"`     // ft
	SDLoad       float64 `yaml:"sd_load"`       // psf
	LiveLoad     float64 `yaml:"live_load"`     // psf
	CladdingLoad float64 `yaml:"cladding_load"` // plf
	Polygon      string  `yaml:"polygon"`       // vertices in ft
	Slab         string  `yaml:"slab"`
	Girder       string  `yaml:"girder"`
	Beam         string  `yaml:"beam"`
	Column       string  `yaml:"column"`
}

type gridTables struct {
	X map[string]float64 `yaml:"x"` // label -> Y ordinate, ft
	Y map[string]float64 `yaml:"y"` // label -> X ordinate, ft
}

type bayRow struct {
	Floor string   `yaml:"floor"`
	Bays  []string `yaml:"bays"`
}

type momentFrameRow struct {
	ColumnX string `yaml:"column_x"`
	BeamX   string `yaml:"beam_x"`
	ColumnY string `yaml:"column_y"`
	BeamY   string `yaml:"beam_y"`
}

type braceRow struct {
	SectionX string `yaml:"section_x"`
	ConfigX  string `yaml:"config_x"`
	SectionY string `yaml:"section_y"`
	ConfigY  string `yaml:"config_y"`
}

type wallRow struct {
	SectionX string `yaml:"section_x"`
	SectionY string `yaml:"section_y"`
}

type optionsRow struct {
	Diaphragm     string `yaml:"diaphragm"`
	BaseFixity    string `yaml:"base_fixity"`
	RigidEndZones bool   `yaml:"rigid_end_zones"`
	InfillBeams   int    `yaml:"infill_beams"`
}

// Load reads, validates, and converts a project file.
func Load(path string) (generate.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return generate.Config{}, &LoadError{Code: ErrCodeNotFound, Message: "reading project file", Err: err}
	}
	return Parse(path, data)
}

// Parse is Load for in-memory documents; path is used for positions in
// schema errors only.
func Parse(path string, data []byte) (generate.Config, error) {
	if err := validateSchema(path, data); err != nil {
		return generate.Config{}, err
	}

	var pf projectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return generate.Config{}, &LoadError{Code: ErrCodeDecode, Message: "decoding project file", Err: err}
	}
	return pf.toConfig()
}

// validateSchema unifies the YAML document with the embedded CUE schema.
func validateSchema(path string, data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: "compiling input schema", Err: err}
	}
	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return &LoadError{Code: ErrCodeDecode, Message: "parsing project file", Err: err}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return &LoadError{Code: ErrCodeDecode, Message: "building project file", Err: err}
	}
	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchema, Message: "project file violates schema", Err: err}
	}
	return nil
}

func (pf *projectFile) toConfig() (generate.Config, error) {
	if len(pf.Floors) == 0 {
		return generate.Config{}, &LoadError{Code: ErrCodeTable, Message: "floor table is empty"}
	}

	cfg := generate.Config{Options: options(pf.Opts)}

	for _, row := range pf.Floors {
		boundary, err := model.ParsePolygon(row.Polygon)
		if err != nil {
			return generate.Config{}, &LoadError{Code: ErrCodeTable,
				Message: fmt.Sprintf("floor %q polygon", row.Name), Err: err}
		}
		for i := range boundary {
			boundary[i].X *= feet
			boundary[i].Y *= feet
		}
		cfg.Floors = append(cfg.Floors, model.Floor{
			Name:         row.Name,
			Elevation:    row.Elevation * feet,
			Height:       row.Height * feet,
			Boundary:     boundary,
			SDLoad:       row.SDLoad * psfToKSI,
			LiveLoad:     row.LiveLoad * psfToKSI,
			CladdingLoad: row.CladdingLoad * plfToKLI,
			Slab:         row.Slab,
			Girder:       row.Girder,
			Beam:         row.Beam,
			Column:       row.Column,
		})
	}

	x := make(map[string]float64, len(pf.Grids.X))
	for label, ord := range pf.Grids.X {
		x[label] = ord * feet
	}
	y := make(map[string]float64, len(pf.Grids.Y))
	for label, ord := range pf.Grids.Y {
		y[label] = ord * feet
	}
	cfg.Grids = grid.NewSystem(x, y)

	// Bay descriptors are keyed by floor name in the file; align them
	// with the floor catalog by index.
	bayByFloor := make(map[string][]string, len(pf.Bays))
	for _, row := range pf.Bays {
		if _, dup := bayByFloor[row.Floor]; dup {
			return generate.Config{}, &LoadError{Code: ErrCodeTable,
				Message: fmt.Sprintf("duplicate SFRS bay row for floor %q", row.Floor)}
		}
		bayByFloor[row.Floor] = row.Bays
	}
	cfg.Bays = make([][]string, len(cfg.Floors))
	for i, f := range cfg.Floors {
		cfg.Bays[i] = bayByFloor[f.Name]
		delete(bayByFloor, f.Name)
	}
	for name := range bayByFloor {
		return generate.Config{}, &LoadError{Code: ErrCodeTable,
			Message: fmt.Sprintf("SFRS bay row references unknown floor %q", name)}
	}

	if len(pf.MF) > 0 {
		for _, row := range pf.MF {
			cfg.MomentFrames = append(cfg.MomentFrames, model.MFSections{
				ColumnX: row.ColumnX, BeamX: row.BeamX,
				ColumnY: row.ColumnY, BeamY: row.BeamY,
			})
		}
	}
	if len(pf.Braces) > 0 {
		for i, row := range pf.Braces {
			cx, err := model.ParseBraceConfig(row.ConfigX)
			if err != nil {
				return generate.Config{}, &LoadError{Code: ErrCodeTable,
					Message: fmt.Sprintf("brace row %d x-config", i), Err: err}
			}
			cy, err := model.ParseBraceConfig(row.ConfigY)
			if err != nil {
				return generate.Config{}, &LoadError{Code: ErrCodeTable,
					Message: fmt.Sprintf("brace row %d y-config", i), Err: err}
			}
			cfg.Braces = append(cfg.Braces, model.BraceRow{
				SectionX: row.SectionX, ConfigX: cx,
				SectionY: row.SectionY, ConfigY: cy,
			})
		}
	}
	if len(pf.Walls) > 0 {
		for _, row := range pf.Walls {
			cfg.Walls = append(cfg.Walls, model.WallRow{SectionX: row.SectionX, SectionY: row.SectionY})
		}
	}
	return cfg, nil
}

func options(row optionsRow) model.Options {
	opts := model.DefaultOptions()
	if row.Diaphragm != "" {
		opts.Diaphragm = model.DiaphragmKind(row.Diaphragm)
	}
	if row.BaseFixity != "" {
		opts.BaseFixity = model.Fixity(row.BaseFixity)
	}
	opts.RigidEndZones = row.RigidEndZones
	opts.InfillBeams = row.InfillBeams
	return opts
}
