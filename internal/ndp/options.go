package ndp

import "net"

// Option is a decoded NDP option: its type byte and the raw bytes that
// follow the (type, length) pair, i.e. length_in_octets - 2 bytes.
type Option struct {
	Type  byte
	Value []byte
}

// PrefixInfo is the decoded form of a Prefix Information option (type 3).
type PrefixInfo struct {
	PrefixLength byte
	Prefix       net.IP
}

// walkOptions iterates the NDP option TLV chain in buf, in the same way
// Splat-NDPeekr's ndp_listener.go parses RA/NA option chains: each
// option's on-wire length is in units of 8 octets (including the 2-byte
// type/length pair itself). A zero length, or a length that would run
// past the end of buf, truncates the walk — the remaining bytes are
// discarded rather than treated as an error, matching a passive listener
// that must tolerate malformed input from the wire.
func walkOptions(buf []byte) []Option {
	var opts []Option
	for len(buf) >= 2 {
		optType := buf[0]
		optLen8 := int(buf[1])
		if optLen8 == 0 {
			break
		}
		optLen := optLen8 * 8
		if optLen > len(buf) {
			break
		}
		opts = append(opts, Option{Type: optType, Value: buf[2:optLen]})
		buf = buf[optLen:]
	}
	return opts
}

// linkLayerAddr extracts the 6-byte MAC carried by a Source/Target
// Link-layer Address option (type 1 or 2, length 1).
func linkLayerAddr(o Option) (net.HardwareAddr, bool) {
	if (o.Type != optSourceLinkLayerAddr && o.Type != optTargetLinkLayerAddr) || len(o.Value) < 6 {
		return nil, false
	}
	addr := make(net.HardwareAddr, 6)
	copy(addr, o.Value[0:6])
	return addr, true
}

// prefixInfo decodes a Prefix Information option (type 3, length 4): 1
// byte prefix-length, 13 reserved bytes (flags + lifetimes + reserved),
// then a 16-byte prefix.
func prefixInfo(o Option) (PrefixInfo, bool) {
	if o.Type != optPrefixInformation || len(o.Value) < 1+13+16 {
		return PrefixInfo{}, false
	}
	prefixLen := o.Value[0]
	prefix := make(net.IP, 16)
	copy(prefix, o.Value[14:30])
	return PrefixInfo{PrefixLength: prefixLen, Prefix: prefix}, true
}
