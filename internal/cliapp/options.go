// Package cliapp builds ndp.CommandLists from three equivalent front
// ends — cobra/pflag argv parsing, a JSON command description, and a
// plain-text script — all sharing one Options struct per subcommand so
// the three surfaces can never drift apart in semantics.
package cliapp

import (
	"fmt"
	"net"
	"strings"

	"github.com/dlrobertson-labs/ndhijack/internal/ndp"
)

// NAOptions is the shared option set for the na/neighbor-advert
// subcommand.
type NAOptions struct {
	Interface string `json:"interface"`
	DstMac    string `json:"dst-mac"`
	DstIP     string `json:"dst-ip"`
	SrcIP     string `json:"src-ip"`
	SrcMac    string `json:"src-mac"`
	TargetMac string `json:"target-mac"`
	TargetIP  string `json:"target-ip"`
	Prefix    int    `json:"prefix"` // accepted for CLI-compatibility, never used: see DESIGN.md
	Repeat    int    `json:"repeat"`
	Timeout   int    `json:"timeout"`
}

// RAOptions is the shared option set for the ra/router-advert subcommand.
type RAOptions struct {
	Interface string `json:"interface"`
	RouterIP  string `json:"router-ip"`
	DstMac    string `json:"dst-mac"`
	DstIP     string `json:"dst-ip"`
	SrcIP     string `json:"src-ip"`
	SrcMac    string `json:"src-mac"`
	TargetMac string `json:"target-mac"`
	Prefix    int    `json:"prefix"`
	Lifetime  int    `json:"lifetime"`
	Repeat    int    `json:"repeat"`
	Timeout   int    `json:"timeout"`
}

// HDOptions is the shared option set for the hd subcommand.
type HDOptions struct {
	Interface string `json:"interface"`
	Timeout   int    `json:"timeout"`
}

const (
	allNodesIP  = "ff02::1"
	allNodesMac = "33:33:00:00:00:01"
)

// resolveInterface returns the hardware address of the named interface,
// used to default src-mac when the caller didn't supply one.
func resolveInterface(name string) (net.HardwareAddr, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, &ndp.Error{Kind: ndp.ErrNoDevice, Op: "cliapp.resolveInterface", Err: err}
	}
	return iface.HardwareAddr, nil
}

func parseMAC(op, name, value string) (net.HardwareAddr, error) {
	mac, err := net.ParseMAC(value)
	if err != nil {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("%s: %w", name, err)}
	}
	return mac, nil
}

func parseIP(op, name, value string) (net.IP, error) {
	ip := net.ParseIP(value)
	if ip == nil || !strings.Contains(value, ":") {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("%s: not an IPv6 address: %q", name, value)}
	}
	return ip, nil
}

// ToTransmitCommand validates o, applies its defaults (src-mac from the
// interface, target-mac from src-mac, target-ip from src-ip, per
// src/na.c's front-end), and builds the Neighbor Advertisement transmit
// command.
func (o NAOptions) ToTransmitCommand() (*ndp.TransmitCommand, error) {
	const op = "cliapp.na"

	if o.Interface == "" || o.DstMac == "" || o.DstIP == "" || o.SrcIP == "" {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("interface, dst-mac, dst-ip, and src-ip are required")}
	}

	srcMacStr := o.SrcMac
	if srcMacStr == "" {
		hw, err := resolveInterface(o.Interface)
		if err != nil {
			return nil, err
		}
		srcMacStr = hw.String()
	}
	targetMacStr := o.TargetMac
	if targetMacStr == "" {
		targetMacStr = srcMacStr
	}
	targetIPStr := o.TargetIP
	if targetIPStr == "" {
		targetIPStr = o.SrcIP
	}

	dstMac, err := parseMAC(op, "dst-mac", o.DstMac)
	if err != nil {
		return nil, err
	}
	srcMac, err := parseMAC(op, "src-mac", srcMacStr)
	if err != nil {
		return nil, err
	}
	targetMac, err := parseMAC(op, "target-mac", targetMacStr)
	if err != nil {
		return nil, err
	}
	dstIP, err := parseIP(op, "dst-ip", o.DstIP)
	if err != nil {
		return nil, err
	}
	srcIP, err := parseIP(op, "src-ip", o.SrcIP)
	if err != nil {
		return nil, err
	}
	targetIP, err := parseIP(op, "target-ip", targetIPStr)
	if err != nil {
		return nil, err
	}

	frame, err := ndp.BuildNeighborAdvertisement(srcMac, dstMac, srcIP, dstIP, targetIP, targetMac)
	if err != nil {
		return nil, err
	}

	return &ndp.TransmitCommand{
		Interface: o.Interface,
		DstEth:    dstMac,
		Frame:     frame,
		Repeat:    o.Repeat,
		Timeout:   o.Timeout,
	}, nil
}

// ToTransmitCommand validates o, applies router-advert.c's defaulting
// rules (dst-mac/dst-ip default together to the all-nodes multicast
// address, src-ip defaults to router-ip, src-mac defaults to the
// interface hw addr, target-mac defaults to src-mac, prefix defaults to
// 64), and builds the Router Advertisement transmit command.
func (o RAOptions) ToTransmitCommand() (*ndp.TransmitCommand, error) {
	const op = "cliapp.ra"

	if o.Interface == "" || o.RouterIP == "" {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("interface and router-ip are required")}
	}
	if (o.DstMac == "") != (o.DstIP == "") {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("dst-mac and dst-ip must be set together or not at all")}
	}

	dstMacStr, dstIPStr := o.DstMac, o.DstIP
	if dstMacStr == "" {
		dstMacStr, dstIPStr = allNodesMac, allNodesIP
	}
	srcIPStr := o.SrcIP
	if srcIPStr == "" {
		srcIPStr = o.RouterIP
	}
	srcMacStr := o.SrcMac
	if srcMacStr == "" {
		hw, err := resolveInterface(o.Interface)
		if err != nil {
			return nil, err
		}
		srcMacStr = hw.String()
	}
	targetMacStr := o.TargetMac
	if targetMacStr == "" {
		targetMacStr = srcMacStr
	}
	prefixLen := o.Prefix
	if prefixLen == 0 {
		prefixLen = 64
	}

	dstMac, err := parseMAC(op, "dst-mac", dstMacStr)
	if err != nil {
		return nil, err
	}
	srcMac, err := parseMAC(op, "src-mac", srcMacStr)
	if err != nil {
		return nil, err
	}
	targetMac, err := parseMAC(op, "target-mac", targetMacStr)
	if err != nil {
		return nil, err
	}
	dstIP, err := parseIP(op, "dst-ip", dstIPStr)
	if err != nil {
		return nil, err
	}
	srcIP, err := parseIP(op, "src-ip", srcIPStr)
	if err != nil {
		return nil, err
	}
	routerIP, err := parseIP(op, "router-ip", o.RouterIP)
	if err != nil {
		return nil, err
	}
	if prefixLen < 0 || prefixLen > 128 {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("prefix: out of range: %d", prefixLen)}
	}
	if o.Lifetime < 0 || o.Lifetime > 65535 {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("lifetime: out of range: %d", o.Lifetime)}
	}

	frame, err := ndp.BuildRouterAdvertisement(srcMac, dstMac, srcIP, dstIP, routerIP, uint8(prefixLen), uint16(o.Lifetime), targetMac)
	if err != nil {
		return nil, err
	}

	return &ndp.TransmitCommand{
		Interface: o.Interface,
		DstEth:    dstMac,
		Frame:     frame,
		Repeat:    o.Repeat,
		Timeout:   o.Timeout,
	}, nil
}

// ToListenCommand builds the default-route hijack listen command
// described by o, installing a fresh ndp.HijackResponder so each hd
// invocation gets its own known-router set.
func (o HDOptions) ToListenCommand() (*ndp.ListenCommand, error) {
	const op = "cliapp.hd"

	if o.Interface == "" {
		return nil, &ndp.Error{Kind: ndp.ErrInvalidArgument, Op: op, Err: fmt.Errorf("interface is required")}
	}

	responder := ndp.NewHijackResponder()
	return &ndp.ListenCommand{
		Interface:   o.Interface,
		TimeoutSecs: o.Timeout,
		Responder:   responder.Respond,
	}, nil
}
