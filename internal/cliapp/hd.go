package cliapp

import "github.com/spf13/cobra"

func (a *App) newHDCommand() *cobra.Command {
	var o HDOptions

	cmd := &cobra.Command{
		Use:   "hd",
		Short: "install a default-route hijack listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHD(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.Interface, "interface", "i", "", "interface to listen on (required)")
	f.IntVarP(&o.Timeout, "timeout", "z", 0, "per-read timeout in seconds")

	return cmd
}

func (a *App) runHD(cmd *cobra.Command, o HDOptions) error {
	ln, err := o.ToListenCommand()
	if err != nil {
		return err
	}
	if err := a.cmds.AddListen(ln); err != nil {
		return err
	}
	if a.deferRun {
		return nil
	}
	return a.run(cmd.Context())
}
