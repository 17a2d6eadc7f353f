// Command ndhijack forges and injects IPv6 Neighbor Discovery Protocol
// messages to perform neighbor-cache poisoning, default-router spoofing,
// and default-route hijacking against a local Ethernet segment.
package main

import (
	"log/slog"
	"os"

	"github.com/dlrobertson-labs/ndhijack/internal/cliapp"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	os.Exit(cliapp.Execute(log))
}
