package cliapp

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
)

// loadJSON parses the top-level object keyed by subcommand name (na, ra,
// hd) whose value is an array of option objects, and appends the
// resulting commands to a.cmds. Each inner object uses exactly the same
// long-option-name keys and value types as the CLI — both surfaces
// populate the same Options structs.
func (a *App) loadJSON(path string) error {
	const op = "cliapp.loadJSON"

	raw, err := os.ReadFile(path)
	if err != nil {
		return &ndp.Error{Kind: ndp.ErrNoDevice, Op: op, Err: err}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: err}
	}

	if msgs, ok := doc["na"]; ok {
		var opts []NAOptions
		if err := json.Unmarshal(msgs, &opts); err != nil {
			return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: err}
		}
		for _, o := range opts {
			tx, err := o.ToTransmitCommand()
			if err != nil {
				return err
			}
			if err := a.cmds.AddTransmit(tx); err != nil {
				return err
			}
		}
	}

	if msgs, ok := doc["ra"]; ok {
		var opts []RAOptions
		if err := json.Unmarshal(msgs, &opts); err != nil {
			return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: err}
		}
		for _, o := range opts {
			tx, err := o.ToTransmitCommand()
			if err != nil {
				return err
			}
			if err := a.cmds.AddTransmit(tx); err != nil {
				return err
			}
		}
	}

	if msgs, ok := doc["hd"]; ok {
		var opts []HDOptions
		if err := json.Unmarshal(msgs, &opts); err != nil {
			return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: err}
		}
		for _, o := range opts {
			ln, err := o.ToListenCommand()
			if err != nil {
				return err
			}
			if err := a.cmds.AddListen(ln); err != nil {
				return err
			}
		}
	}

	if len(doc) == 0 {
		return &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("empty JSON command document")}
	}
	return nil
}
