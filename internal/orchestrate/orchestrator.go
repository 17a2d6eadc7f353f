// Package orchestrate wires a parsed set of transmit/listen commands into
// the two-peer transmitter/receiver split described by the specification,
// and exposes the single entry point the CLI, JSON, and script front-ends
// all funnel through.
package orchestrate

import (
	"context"
	"log/slog"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
	"golang.org/x/sync/errgroup"
)

// Run builds an empty sender registry, then splits into a transmitter peer
// (the scheduler, over cmds.Transmit) and a receiver peer (the listener,
// over cmds.Listen) under one errgroup. A peer that returns an error
// cancels the group's context, which stops the other peer. The
// transmitter finishing successfully does not stop the receiver: when
// listen commands are present, Run returns only once ctx is canceled or a
// peer fails.
//
// This is the one execution path shared by the argv, -j/--json, and
// -x/--execute front-ends: they differ only in how CommandLists gets
// populated, never in how it gets run.
func Run(ctx context.Context, log *slog.Logger, cmds *ndp.CommandLists) error {
	registry := ndp.NewRegistry()
	defer registry.Close()

	g, gctx := errgroup.WithContext(ctx)

	listenCtx, cancelListen := context.WithCancel(gctx)
	defer cancelListen()

	g.Go(func() error {
		sched := ndp.NewScheduler(registry)
		err := sched.Run(gctx, cmds.Transmit)
		if err != nil {
			log.Error("transmitter peer exited with error", "error", err)
		}
		return err
	})

	if cmds.Listen.Len() > 0 {
		g.Go(func() error {
			listener := ndp.NewListener(registry)
			return listener.Run(listenCtx, cmds.Listen)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("orchestrator peer failed", "error", err)
		return err
	}
	return nil
}
