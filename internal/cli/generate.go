package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/grid"
	"github.com/edkwan/framegen/internal/input"
	"github.com/edkwan/framegen/internal/logging"
	"github.com/edkwan/framegen/internal/sink"
	"github.com/edkwan/framegen/internal/store"
)

// GenerateResult summarizes one generation run.
type GenerateResult struct {
	RunToken   string   `json:"run_token"`
	Members    int      `json:"members"`
	Walls      int      `json:"walls"`
	Operations int      `json:"operations"`
	Errors     []string `json:"errors,omitempty"`
}

func (r GenerateResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s: %d members, %d walls, %d operations",
		r.RunToken, r.Members, r.Walls, r.Operations)
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "\n  error: %s", e)
	}
	return b.String()
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "generate <project-file>",
		Short: "Generate the frame model from a project file",
		Long: `Generate the complete frame model from a tabular project file.

The run is recorded as an ordered operation script for the analysis
bridge, and the resulting state is saved to the database so a later
update can re-apply section changes without regenerating geometry.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(rootOpts, args[0], scriptPath, cmd)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "write the operation script to this file")
	return cmd
}

func runGenerate(opts *RootOptions, projectPath, scriptPath string, cmd *cobra.Command) error {
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
	formatter.VerboseLog("Loaded %d floor(s) from %s", len(cfg.Floors), projectPath)
	formatter.VerboseLog("Grids X: %s, Y: %s",
		strings.Join(cfg.Grids.Labels(grid.FamilyX), " "),
		strings.Join(cfg.Grids.Labels(grid.FamilyY), " "))

	mem := sink.NewMemory()
	log := logging.NewWriter(formatter.GetErrWriter(), opts.Verbose)

	st, err := generate.Run(mem, cfg, log)
	if err != nil {
		_ = formatter.Error(CodeGenerate, err.Error(), nil)
		return WrapExitError(ExitFailure, "generation failed", err)
	}

	if opts.DB != "" {
		db, err := store.Open(opts.DB)
		if err != nil {
			_ = formatter.Error(CodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "opening state database", err)
		}
		defer db.Close()
		if err := db.SaveState(context.Background(), st); err != nil {
			_ = formatter.Error(CodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "saving state", err)
		}
		formatter.VerboseLog("State saved to %s", opts.DB)
	}

	if scriptPath != "" {
		if err := writeScript(scriptPath, mem.Ops); err != nil {
			_ = formatter.Error(CodeScript, err.Error(), nil)
			return WrapExitError(ExitCommandError, "writing operation script", err)
		}
		formatter.VerboseLog("Wrote %d operation(s) to %s", len(mem.Ops), scriptPath)
	}

	result := GenerateResult{
		RunToken:   st.RunToken,
		Members:    len(st.Members),
		Walls:      len(st.Walls),
		Operations: len(mem.Ops),
	}
	for _, e := range st.Errors {
		result.Errors = append(result.Errors, e.Error())
	}

	if err := formatter.Success(result); err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		return NewExitError(ExitFailure,
			fmt.Sprintf("generation finished with %d error(s)", len(result.Errors)))
	}
	return nil
}

func writeScript(path string, ops []string) error {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(op)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
