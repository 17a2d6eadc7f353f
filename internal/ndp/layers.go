package ndp

// layerTag identifies the protocol layer a chunk of bytes belongs to,
// mirroring the enum sylkie_header_type sum type from the original
// packet container: outer-to-inner network order, ICMPv6 always
// preceded by exactly one IPv6 layer, and an optional terminal DATA
// layer carrying the ICMPv6 payload.
type layerTag uint8

const (
	layerEthernet layerTag = iota
	layerIPv6
	layerICMPv6
	layerData
)

// layer is one (tag, bytes) entry in a Frame.
type layer struct {
	tag   layerTag
	bytes []byte
}

// Frame is an ordered sequence of protocol layers that can be serialized
// into a single wire buffer. It replaces the original's singly-linked
// sylkie_header_list with a plain slice: frames are built once,
// front-to-back, and never mutated mid-list, so the extra pointer-chasing
// a linked list buys has no payoff here.
type Frame struct {
	layers []layer
}

func newFrame() *Frame {
	return &Frame{layers: make([]layer, 0, 4)}
}

func (f *Frame) append(tag layerTag, b []byte) {
	f.layers = append(f.layers, layer{tag: tag, bytes: b})
}

// icmpv6 returns the bytes of the single ICMPv6 layer, if present, and its
// index in f.layers.
func (f *Frame) icmpv6() (idx int, b []byte, ok bool) {
	for i, l := range f.layers {
		if l.tag == layerICMPv6 {
			return i, l.bytes, true
		}
	}
	return 0, nil, false
}

// ipv6 returns the bytes of the single IPv6 layer, if present.
func (f *Frame) ipv6() (b []byte, ok bool) {
	for _, l := range f.layers {
		if l.tag == layerIPv6 {
			return l.bytes, true
		}
	}
	return nil, false
}

// data returns the bytes of the terminal DATA layer, if present.
func (f *Frame) data() (b []byte, ok bool) {
	for _, l := range f.layers {
		if l.tag == layerData {
			return l.bytes, true
		}
	}
	return nil, false
}

// Bytes walks the layers in order and concatenates them into a fresh
// wire buffer, computing the ICMPv6 checksum first (over the IPv6
// pseudo-header, the ICMPv6 header, and the DATA payload) when an ICMPv6
// layer is present. The stored checksum field is zeroed again once the
// buffer is produced, so a later mutate-then-reserialize recomputes it
// rather than reusing a stale value.
func (f *Frame) Bytes() []byte {
	if idx, icmp, ok := f.icmpv6(); ok {
		ip6, _ := f.ipv6()
		payload, _ := f.data()
		setChecksum(ip6, icmp, payload)
		defer clearChecksum(f.layers[idx].bytes)
	}

	total := 0
	for _, l := range f.layers {
		total += len(l.bytes)
	}

	out := make([]byte, 0, total)
	for _, l := range f.layers {
		out = append(out, l.bytes...)
	}
	return out
}
