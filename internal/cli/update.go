package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edkwan/framegen/internal/generate"
	"github.com/edkwan/framegen/internal/input"
	"github.com/edkwan/framegen/internal/logging"
	"github.com/edkwan/framegen/internal/resync"
	"github.com/edkwan/framegen/internal/sink"
	"github.com/edkwan/framegen/internal/store"
)

// UpdateResult summarizes one resync pass.
type UpdateResult struct {
	RunToken   string `json:"run_token"`
	Operations int    `json:"operations"`
}

func (r UpdateResult) String() string {
	return fmt.Sprintf("run %s: %d section update(s)", r.RunToken, r.Operations)
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var scriptPath string

	cmd := &cobra.Command{
		Use:   "update <project-file>",
		Short: "Re-apply section sizes to a generated model",
		Long: `Re-apply the project file's section sizes to an already generated
model using the saved membership state. Geometry is never created or
deleted: only section assignments are pushed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(rootOpts, args[0], scriptPath, cmd)
		},
	}

	cmd.Flags().StringVar(&scriptPath, "script", "", "write the operation script to this file")
	return cmd
}

func runUpdate(opts *RootOptions, projectPath, scriptPath string, cmd *cobra.Command) error {
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

	db, err := store.Open(opts.DB)
	if err != nil {
		_ = formatter.Error(CodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "opening state database", err)
	}
	defer db.Close()

	ctx := context.Background()
	st, err := db.LoadState(ctx)
	if errors.Is(err, store.ErrNoState) {
		_ = formatter.Error(CodeNoState, "no saved state: run generate first", nil)
		return WrapExitError(ExitCommandError, "loading state", err)
	}
	if err != nil {
		_ = formatter.Error(CodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "loading state", err)
	}
	formatter.VerboseLog("Loaded state for run %s", st.RunToken)

	mem := seedSink(st)
	updater := &resync.Updater{
		Sink: mem,
		Log:  logging.NewWriter(formatter.GetErrWriter(), opts.Verbose),
	}
	if err := updater.Apply(st, cfg); err != nil {
		_ = formatter.Error(CodeResync, err.Error(), nil)
		return WrapExitError(ExitFailure, "resync failed", err)
	}

	if err := db.SaveState(ctx, st); err != nil {
		_ = formatter.Error(CodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "saving state", err)
	}

	if scriptPath != "" {
		if err := writeScript(scriptPath, mem.Ops); err != nil {
			_ = formatter.Error(CodeScript, err.Error(), nil)
			return WrapExitError(ExitCommandError, "writing operation script", err)
		}
		formatter.VerboseLog("Wrote %d operation(s) to %s", len(mem.Ops), scriptPath)
	}

	return formatter.Success(UpdateResult{RunToken: st.RunToken, Operations: len(mem.Ops)})
}

// seedSink rebuilds a recording sink's object tables from saved state so
// the resync pass can address members and walls by their original IDs.
func seedSink(st *generate.State) *sink.Memory {
	mem := sink.NewMemory()
	for id, m := range st.Members {
		mem.Frames[id] = &sink.FrameRec{
			ID: id, I: m.I, J: m.J, Section: m.Section, Deleted: m.Deleted,
		}
	}
	for id, w := range st.Walls {
		mem.Areas[id] = &sink.AreaRec{
			ID: id, Section: w.Section, Wall: true, Pier: w.Pier,
			Loads: make(map[string]float64),
		}
	}
	return mem
}
