package ndp

import (
	"container/list"
	"net"
)

// TransmitCommand describes one periodic (or one-shot) frame transmission:
// which interface/handle to send on, the destination hardware address, the
// prebuilt frame, and its repeat/timeout schedule (see scheduler.go for the
// exact semantics of repeat/timeout).
type TransmitCommand struct {
	Interface string
	DstEth    net.HardwareAddr
	Frame     *Frame
	Repeat    int
	Timeout   int
}

// Responder is invoked for each inbound frame a ListenCommand accepts.
// It returns a non-nil *TransmitCommand to synthesize a reply, or nil to
// take no action.
type Responder func(eth, ip6, payload []byte) *TransmitCommand

// ListenCommand describes one passive listener: the interface to bind,
// optional source/destination IPv6 filters, a per-read timeout, and the
// responder callback invoked for every accepted frame.
type ListenCommand struct {
	Interface   string
	FilterSrc   net.IP
	FilterDst   net.IP
	TimeoutSecs int
	Responder   Responder
}

// CommandLists holds the orchestrator's two disjoint command sets. Each
// list is a container/list.List of *TransmitCommand or *ListenCommand
// respectively, directly modeling the original's pkt_cmd_list/lst_cmd_list
// GENERIC_LIST instantiations: commands are pure data until the scheduler
// or listener walks the list.
type CommandLists struct {
	Transmit *list.List
	Listen   *list.List
}

// NewCommandLists returns an empty pair of command lists.
func NewCommandLists() *CommandLists {
	return &CommandLists{
		Transmit: list.New(),
		Listen:   list.New(),
	}
}

// AddTransmit appends a validated transmit command. An empty interface
// name or nil frame is rejected and the list is left unchanged.
func (c *CommandLists) AddTransmit(cmd *TransmitCommand) error {
	const op = "ndp.CommandLists.AddTransmit"
	if cmd == nil || cmd.Interface == "" || cmd.Frame == nil {
		return newError(op, ErrInvalidArgument, nil)
	}
	c.Transmit.PushBack(cmd)
	return nil
}

// AddListen appends a validated listen command.
func (c *CommandLists) AddListen(cmd *ListenCommand) error {
	const op = "ndp.CommandLists.AddListen"
	if cmd == nil || cmd.Interface == "" || cmd.Responder == nil {
		return newError(op, ErrInvalidArgument, nil)
	}
	c.Listen.PushBack(cmd)
	return nil
}
