package ndp

import (
	"encoding/binary"
	"net"

	"github.com/mdlayher/ethernet"
)

const (
	icmpv6TypeRouterAdvertisement   = 134
	icmpv6TypeNeighborAdvertisement = 136

	ipProtoICMPv6 = 58
	defaultHopLimit = 255

	optTargetLinkLayerAddr = 2
	optSourceLinkLayerAddr = 1
	optPrefixInformation   = 3

	naSolicitedFlag = 0x20
)

// ethernetHeader builds a 14-byte Ethernet II header: dst | src | ethertype.
func ethernetHeader(dstEth, srcEth net.HardwareAddr) ([]byte, error) {
	if len(dstEth) != 6 || len(srcEth) != 6 {
		return nil, newError("ndp.ethernetHeader", ErrInvalidArgument, nil)
	}
	b := make([]byte, 14)
	copy(b[0:6], dstEth)
	copy(b[6:12], srcEth)
	binary.BigEndian.PutUint16(b[12:14], uint16(ethernet.EtherTypeIPv6))
	return b, nil
}

// ipv6Header builds the fixed 40-byte IPv6 header. payloadLen is filled in
// by the caller once the ICMPv6 header and payload sizes are known.
func ipv6Header(srcIP, dstIP net.IP, payloadLen int) ([]byte, error) {
	src16 := srcIP.To16()
	dst16 := dstIP.To16()
	if src16 == nil || dst16 == nil {
		return nil, newError("ndp.ipv6Header", ErrInvalidArgument, nil)
	}
	b := make([]byte, 40)
	b[0] = 0x60 // version 6, traffic class/flow label zeroed
	binary.BigEndian.PutUint16(b[4:6], uint16(payloadLen))
	b[6] = ipProtoICMPv6
	b[7] = defaultHopLimit
	copy(b[8:24], src16)
	copy(b[24:40], dst16)
	return b, nil
}

// icmpv6Header builds the common 4-byte type/code/checksum-placeholder
// prefix shared by every ICMPv6 message this package builds; every
// type-specific field beyond that lives in the DATA layer.
func icmpv6Header(msgType byte) []byte {
	return []byte{msgType, 0, 0, 0}
}

// BuildNeighborAdvertisement constructs a Neighbor Advertisement frame with
// the Solicited flag set (Router and Override clear), carrying a single
// Target Link-layer Address option.
func BuildNeighborAdvertisement(srcEth, dstEth net.HardwareAddr, srcIP, dstIP, targetIP net.IP, targetEth net.HardwareAddr) (*Frame, error) {
	const op = "ndp.BuildNeighborAdvertisement"

	eth, err := ethernetHeader(dstEth, srcEth)
	if err != nil {
		return nil, err
	}
	if len(targetEth) != 6 {
		return nil, newError(op, ErrInvalidArgument, nil)
	}
	targetIP16 := targetIP.To16()
	if targetIP16 == nil {
		return nil, newError(op, ErrInvalidArgument, nil)
	}

	icmp := icmpv6Header(icmpv6TypeNeighborAdvertisement)

	data := make([]byte, 0, 28)
	data = append(data, naSolicitedFlag, 0, 0, 0)
	data = append(data, targetIP16...)
	data = append(data, optTargetLinkLayerAddr, 1)
	data = append(data, targetEth...)

	ip6, err := ipv6Header(srcIP, dstIP, len(icmp)+len(data))
	if err != nil {
		return nil, err
	}

	f := newFrame()
	f.append(layerEthernet, eth)
	f.append(layerIPv6, ip6)
	f.append(layerICMPv6, icmp)
	f.append(layerData, data)
	return f, nil
}

// BuildRouterAdvertisement constructs a Router Advertisement frame carrying
// one Prefix Information option and one Source Link-layer Address option.
// lifetime is encoded into the router-lifetime field (network byte order)
// of the per-RA fields block; see DESIGN.md for why this repository
// deviates from the source's zero-fill here.
func BuildRouterAdvertisement(srcEth, dstEth net.HardwareAddr, srcIP, dstIP, prefixIP net.IP, prefixLen uint8, lifetime uint16, targetEth net.HardwareAddr) (*Frame, error) {
	const op = "ndp.BuildRouterAdvertisement"

	eth, err := ethernetHeader(dstEth, srcEth)
	if err != nil {
		return nil, err
	}
	if len(targetEth) != 6 {
		return nil, newError(op, ErrInvalidArgument, nil)
	}
	prefixIP16 := prefixIP.To16()
	if prefixIP16 == nil {
		return nil, newError(op, ErrInvalidArgument, nil)
	}

	icmp := icmpv6Header(icmpv6TypeRouterAdvertisement)

	data := make([]byte, 0, 48)
	perRA := [8]byte{} // cur-hop-limit, flags, router-lifetime(2), reachable-time(2), retrans-timer(2)
	binary.BigEndian.PutUint16(perRA[2:4], lifetime)
	data = append(data, perRA[:]...)

	prefixOpt := make([]byte, 0, 32)
	prefixOpt = append(prefixOpt, optPrefixInformation, 4, prefixLen)
	prefixOpt = append(prefixOpt, make([]byte, 13)...)
	prefixOpt = append(prefixOpt, prefixIP16...)
	data = append(data, prefixOpt...)

	data = append(data, optSourceLinkLayerAddr, 1)
	data = append(data, targetEth...)

	ip6, err := ipv6Header(srcIP, dstIP, len(icmp)+len(data))
	if err != nil {
		return nil, err
	}

	f := newFrame()
	f.append(layerEthernet, eth)
	f.append(layerIPv6, ip6)
	f.append(layerICMPv6, icmp)
	f.append(layerData, data)
	return f, nil
}
