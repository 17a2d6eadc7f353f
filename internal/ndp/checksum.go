package ndp

import "encoding/binary"

// checksumOffset is the byte offset of the checksum field within every
// ICMPv6 header this package builds: type(1) code(1) checksum(2) ...
const checksumOffset = 2

// sum16 accumulates the one's-complement sum of b interpreted as
// big-endian 16-bit words, folding in acc as a running total. A trailing
// odd byte is summed as the high byte of a zero-padded word, per the
// Internet checksum algorithm.
func sum16(acc uint32, b []byte) uint32 {
	i := 0
	for ; i+1 < len(b); i += 2 {
		acc += uint32(binary.BigEndian.Uint16(b[i:]))
	}
	if i < len(b) {
		acc += uint32(b[i]) << 8
	}
	return acc
}

func foldCarries(sum uint32) uint16 {
	sum = (sum >> 16) + (sum & 0xFFFF)
	sum += sum >> 16
	return uint16(sum)
}

// setChecksum computes the ICMPv6 checksum over the IPv6 pseudo-header
// (src, dst, payload-length, next-header) followed by the ICMPv6 header
// (with its checksum field zeroed) and the ICMPv6 payload, then writes
// the one's complement of the folded sum into icmp's checksum field.
//
// ip6 is the 40-byte IPv6 header, icmp is the ICMPv6 header bytes, and
// payload is the optional DATA-layer payload that follows it.
func setChecksum(ip6, icmp, payload []byte) {
	var sum uint32

	sum = sum16(sum, ip6[8:24])  // source address
	sum = sum16(sum, ip6[24:40]) // destination address
	sum = sum16(sum, ip6[4:6])   // payload length, already network order

	nextHeaderWord := [2]byte{ip6[6], 0}
	sum = sum16(sum, nextHeaderWord[:])

	saved := [2]byte{icmp[checksumOffset], icmp[checksumOffset+1]}
	icmp[checksumOffset], icmp[checksumOffset+1] = 0, 0
	sum = sum16(sum, icmp)
	icmp[checksumOffset], icmp[checksumOffset+1] = saved[0], saved[1]

	if len(payload) > 0 {
		sum = sum16(sum, payload)
	}

	cksum := ^foldCarries(sum)
	binary.BigEndian.PutUint16(icmp[checksumOffset:], cksum)
}

// clearChecksum zeroes the checksum field of an ICMPv6 header, so that a
// subsequent mutation-then-reserialize of the owning Frame recomputes it
// from scratch instead of reusing a stale value.
func clearChecksum(icmp []byte) {
	icmp[checksumOffset], icmp[checksumOffset+1] = 0, 0
}

// VerifyChecksum folds the same pseudo-header + header + payload sum used
// by setChecksum but keeps the stored checksum in place; the result is
// 0xFFFF for a valid frame. It exists for tests (§8 "checksum
// correctness") and is not used by the frame builder itself.
func VerifyChecksum(ip6, icmp, payload []byte) uint16 {
	var sum uint32
	sum = sum16(sum, ip6[8:24])
	sum = sum16(sum, ip6[24:40])
	sum = sum16(sum, ip6[4:6])
	nextHeaderWord := [2]byte{ip6[6], 0}
	sum = sum16(sum, nextHeaderWord[:])
	sum = sum16(sum, icmp)
	if len(payload) > 0 {
		sum = sum16(sum, payload)
	}
	return foldCarries(sum)
}
