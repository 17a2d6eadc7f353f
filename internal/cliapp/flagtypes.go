package cliapp

import (
	"fmt"
	"net"
	"strings"

	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*macFlag)(nil)
	_ pflag.Value = (*ipv6Flag)(nil)
)

// macFlag and ipv6Flag implement pflag.Value so malformed hardware/IPv6
// addresses are rejected at flag-parse time, per the value-type table in
// §6, instead of surfacing later from the frame builder. Each wraps the
// *string field of the shared Options struct it belongs to, so JSON and
// CLI parsing land in the same field either way.
type macFlag struct{ dst *string }

func (f *macFlag) String() string { return *f.dst }

func (f *macFlag) Set(s string) error {
	if s == "" {
		*f.dst = ""
		return nil
	}
	if _, err := net.ParseMAC(s); err != nil {
		return fmt.Errorf("invalid hardware address %q: %w", s, err)
	}
	*f.dst = s
	return nil
}

func (f *macFlag) Type() string { return "mac" }

type ipv6Flag struct{ dst *string }

func (f *ipv6Flag) String() string { return *f.dst }

func (f *ipv6Flag) Set(s string) error {
	if s == "" {
		*f.dst = ""
		return nil
	}
	ip := net.ParseIP(s)
	if ip == nil || !strings.Contains(s, ":") {
		return fmt.Errorf("invalid IPv6 address %q", s)
	}
	*f.dst = s
	return nil
}

func (f *ipv6Flag) Type() string { return "ipv6" }
