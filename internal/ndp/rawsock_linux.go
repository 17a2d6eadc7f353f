//go:build linux

package ndp

import (
	"encoding/binary"
	"net"

	"golang.org/x/sys/unix"
)

// htons converts a host-order uint16 to network order, matching the
// bare-metal htons() call the original sender uses when it opens its
// AF_PACKET socket.
func htons(v uint16) uint16 {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return binary.LittleEndian.Uint16(b)
}

// openRawSocket opens an AF_PACKET/SOCK_RAW socket bound to the named
// interface, accepting every ethertype exactly like lib/sender.c's
// socket(AF_PACKET, SOCK_RAW, htons(ETH_P_ALL)) + bind to sockaddr_ll.
func openRawSocket(iface *net.Interface) (fd int, err error) {
	const op = "ndp.openRawSocket"

	fd, sockErr := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ALL)))
	if sockErr != nil {
		return -1, wrapErrno(op, sockErr)
	}

	sa := &unix.SockaddrLinklayer{
		Protocol: htons(unix.ETH_P_ALL),
		Ifindex:  iface.Index,
	}
	if bindErr := unix.Bind(fd, sa); bindErr != nil {
		unix.Close(fd)
		return -1, wrapErrno(op, bindErr)
	}
	return fd, nil
}

// closeFD closes a raw socket file descriptor.
func closeFD(fd int) error {
	return unix.Close(fd)
}

// sendRaw transmits buf as a single datagram on fd, addressed to the given
// interface index and destination hardware address.
func sendRaw(fd int, ifIndex int, dst net.HardwareAddr, buf []byte) error {
	const op = "ndp.sendRaw"

	var addr [8]byte
	copy(addr[:], dst)

	sa := &unix.SockaddrLinklayer{
		Ifindex: ifIndex,
		Halen:   uint8(len(dst)),
		Addr:    addr,
	}
	if err := unix.Sendto(fd, buf, 0, sa); err != nil {
		return wrapErrno(op, err)
	}
	return nil
}
