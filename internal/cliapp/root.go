package cliapp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
	"github.com/dlrobertson-labs/ndhijack/internal/orchestrate"
	"github.com/dlrobertson-labs/ndhijack/internal/privilege"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// App holds the state shared by every subcommand: the logger and the
// command lists accumulated by whichever front end is driving this run.
type App struct {
	Log  *slog.Logger
	cmds *ndp.CommandLists

	jsonFile   string
	scriptFile string

	// deferRun is set while the script front end is populating cmds from
	// multiple subcommand invocations, so each invocation's
	// RunE only appends to cmds instead of immediately handing a
	// partial command set to the orchestrator.
	deferRun bool
}

// NewRootCommand builds the PROGRAM [OPTIONS | SUBCOMMAND ...] cobra tree:
// na/neighbor-advert, ra/router-advert, and hd, plus the -j/--json and
// -x/--execute front-end flags described in §6.
func NewRootCommand(log *slog.Logger) *cobra.Command {
	app := &App{Log: log, cmds: ndp.NewCommandLists()}

	root := &cobra.Command{
		Use:           "ndhijack",
		Short:         "forge and inject IPv6 Neighbor Discovery Protocol messages",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runFrontEnds(cmd.Context())
		},
	}
	root.Flags().StringVarP(&app.jsonFile, "json", "j", "", "execute commands described in a JSON file")
	root.Flags().StringVarP(&app.scriptFile, "execute", "x", "", "execute commands from a plain-text script file")

	root.AddCommand(app.newNACommand())
	root.AddCommand(app.newRACommand())
	root.AddCommand(app.newHDCommand())

	return root
}

// runFrontEnds is the root command's RunE: invoked only when neither a
// subcommand nor -j/-x produced a command list directly (i.e. the root
// command itself was given -j/-x with no subcommand on the line).
func (a *App) runFrontEnds(ctx context.Context) error {
	switch {
	case a.jsonFile != "":
		if err := a.loadJSON(a.jsonFile); err != nil {
			return err
		}
	case a.scriptFile != "":
		if err := a.loadScript(a.scriptFile); err != nil {
			return err
		}
	default:
		return fmt.Errorf("no subcommand, -j/--json, or -x/--execute given")
	}
	return a.run(ctx)
}

// run checks privileges and hands the accumulated command lists to the
// orchestrator — the single execution path shared by argv, JSON, and
// script invocations.
func (a *App) run(ctx context.Context) error {
	if err := privilege.Require(); err != nil {
		return err
	}
	return orchestrate.Run(ctx, a.Log, a.cmds)
}

// Execute runs the root command against os.Args and returns the process
// exit code: 0 on success, non-zero on any parse, initialization, or
// transmission failure, per §6.
func Execute(log *slog.Logger) int {
	root := NewRootCommand(log)
	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Error("command failed", "error", err)
		return 1
	}
	return 0
}
