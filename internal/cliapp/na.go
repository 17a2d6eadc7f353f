package cliapp

import "github.com/spf13/cobra"

func (a *App) newNACommand() *cobra.Command {
	var o NAOptions

	cmd := &cobra.Command{
		Use:     "na",
		Aliases: []string{"neighbor-advert"},
		Short:   "forge and transmit a Neighbor Advertisement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNA(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.Interface, "interface", "i", "", "interface to transmit on (required)")
	f.VarP(&macFlag{&o.DstMac}, "dst-mac", "d", "destination hardware address (required)")
	f.VarP(&ipv6Flag{&o.DstIP}, "dst-ip", "D", "destination IPv6 address (required)")
	f.VarP(&ipv6Flag{&o.SrcIP}, "src-ip", "S", "source IPv6 address (required)")
	f.VarP(&macFlag{&o.SrcMac}, "src-mac", "s", "source hardware address (defaults to interface hw addr)")
	f.VarP(&macFlag{&o.TargetMac}, "target-mac", "t", "target hardware address (defaults to src-mac)")
	f.VarP(&ipv6Flag{&o.TargetIP}, "target-ip", "T", "target IPv6 address (defaults to src-ip)")
	f.IntVarP(&o.Prefix, "prefix", "p", 0, "unused by Neighbor Advertisement; accepted for CLI-compatibility")
	f.IntVarP(&o.Repeat, "repeat", "r", 0, "repeat count (0 or 1 = once, <0 = infinite)")
	f.IntVarP(&o.Timeout, "timeout", "z", 0, "seconds between sends")

	return cmd
}

func (a *App) runNA(cmd *cobra.Command, o NAOptions) error {
	tx, err := o.ToTransmitCommand()
	if err != nil {
		return err
	}
	if err := a.cmds.AddTransmit(tx); err != nil {
		return err
	}
	if a.deferRun {
		return nil
	}
	return a.run(cmd.Context())
}
