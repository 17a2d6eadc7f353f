package cliapp

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
	"github.com/spf13/cobra"
)

// loadScript reads one subcommand invocation per line, whitespace-split
// into argv, and re-enters it through a fresh copy of the same cobra
// command tree used by the argv front end — directly modeling
// run_from_string's strtok(line, " ") + parse_cmdline dispatch. Blank
// lines and lines starting with '#' are skipped.
func (a *App) loadScript(path string) error {
	const op = "cliapp.loadScript"

	f, err := os.Open(path)
	if err != nil {
		return &ndp.Error{Kind: ndp.ErrNoDevice, Op: op, Err: err}
	}
	defer f.Close()

	a.deferRun = true
	defer func() { a.deferRun = false }()

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		cmd, err := a.lineCommand(fields[0])
		if err != nil {
			return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("line %d: %w", lineNo, err)}
		}

		cmd.SetArgs(fields[1:])
		if err := cmd.Execute(); err != nil {
			return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("line %d: %w", lineNo, err)}
		}
	}
	if err := sc.Err(); err != nil {
		return &ndp.Error{Kind: ndp.ErrSyscallFailed, Op: op, Err: err}
	}
	return nil
}

// lineCommand returns a fresh cobra.Command for the named subcommand, so
// each script line gets its own zero-valued Options rather than reusing
// flag state left over from a previous line.
func (a *App) lineCommand(name string) (*cobra.Command, error) {
	switch name {
	case "na", "neighbor-advert":
		return a.newNACommand(), nil
	case "ra", "router-advert":
		return a.newRACommand(), nil
	case "hd":
		return a.newHDCommand(), nil
	default:
		return nil, fmt.Errorf("unknown subcommand: %q", name)
	}
}
