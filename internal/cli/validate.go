package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/input"
	"github.com/edkwan/framegen/internal/logging"
	"github.com/edkwan/framegen/internal/sink"
)

// ValidationResult holds dry-run validation results. Grid labels are
// listed in natural order, numeric labels by value.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Floors  int      `json:"floors"`
	GridsX  []string `json:"grids_x,omitempty"`
	GridsY  []string `json:"grids_y,omitempty"`
	Members int      `json:"members"`
	Walls   int      `json:"walls"`
	Errors  []string `json:"errors,omitempty"`
}

func (r ValidationResult) String() string {
	if !r.Valid {
		s := "project invalid"
		for _, e := range r.Errors {
			s += "\n  " + e
		}
		return s
	}
	return fmt.Sprintf("project valid: %d floor(s), %d member(s), %d wall(s)\n  grids X: %s\n  grids Y: %s",
		r.Floors, r.Members, r.Walls,
		strings.Join(r.GridsX, " "), strings.Join(r.GridsY, " "))
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project-file>",
		Short: "Validate a project file without touching the database",
		Long: `Validate a project file by running a full in-memory generation.

Schema violations, bad descriptors, and non-simple boundary polygons
are all reported; no state is saved and no script is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, projectPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := input.Load(projectPath)
	if err != nil {
		_ = formatter.Error(errorCode(err, CodeLoad), err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading project file", err)
	}
	formatter.VerboseLog("Schema valid, %d floor(s)", len(cfg.Floors))

	// Dry run against the in-memory sink surfaces the per-bay and
	// per-floor failures the schema cannot catch.
	st, err := generate.Run(sink.NewMemory(), cfg, logging.Nop())
	if err != nil {
		result := ValidationResult{Valid: false, Floors: len(cfg.Floors), Errors: []string{err.Error()}}
		if out := formatter.Success(result); out != nil {
			return out
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	result := ValidationResult{
		Valid:   len(st.Errors) == 0,
		Floors:  len(cfg.Floors),
		GridsX:  cfg.Grids.Labels(grid.FamilyX),
		GridsY:  cfg.Grids.Labels(grid.FamilyY),
		Members: len(st.Members),
		Walls:   len(st.Walls),
	}
	for _, e := range st.Errors {
		result.Errors = append(result.Errors, e.Error())
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure,
			fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	}
	return nil
}
