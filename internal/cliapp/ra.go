package cliapp

import "github.com/spf13/cobra"

func (a *App) newRACommand() *cobra.Command {
	var o RAOptions

	cmd := &cobra.Command{
		Use:     "ra",
		Aliases: []string{"router-advert"},
		Short:   "forge and transmit a Router Advertisement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRA(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.Interface, "interface", "i", "", "interface to transmit on (required)")
	f.VarP(&ipv6Flag{&o.RouterIP}, "router-ip", "R", "router's IPv6 address (required)")
	f.VarP(&macFlag{&o.DstMac}, "dst-mac", "d", "destination hardware address (defaults with dst-ip to all-nodes multicast)")
	f.VarP(&ipv6Flag{&o.DstIP}, "dst-ip", "D", "destination IPv6 address (defaults with dst-mac to all-nodes multicast)")
	f.VarP(&ipv6Flag{&o.SrcIP}, "src-ip", "S", "source IPv6 address (defaults to router-ip)")
	f.VarP(&macFlag{&o.SrcMac}, "src-mac", "s", "source hardware address (defaults to interface hw addr)")
	f.VarP(&macFlag{&o.TargetMac}, "target-mac", "t", "target hardware address (defaults to src-mac)")
	f.IntVarP(&o.Prefix, "prefix", "p", 64, "advertised prefix length")
	f.IntVarP(&o.Lifetime, "lifetime", "l", 0, "router lifetime in seconds")
	f.IntVarP(&o.Repeat, "repeat", "r", 0, "repeat count (0 or 1 = once, <0 = infinite)")
	f.IntVarP(&o.Timeout, "timeout", "z", 0, "seconds between sends")

	return cmd
}

func (a *App) runRA(cmd *cobra.Command, o RAOptions) error {
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
