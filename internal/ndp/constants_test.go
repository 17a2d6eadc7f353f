package ndp

import (
	"testing"

	"github.com/mdlayher/ethernet"
	"golang.org/x/net/ipv6"
)

// TestConstantParity guards against silent drift between this package's
// hand-written wire constants and the ecosystem packages that define the
// same values, the way Splat-NDPeekr/lib/ndp_listener_test.go cross-checks
// its classifier against golang.org/x/net/ipv6's ICMPType table.
func TestConstantParity(t *testing.T) {
	if got, want := uint16(ethernet.EtherTypeIPv6), uint16(0x86DD); got != want {
		t.Errorf("ethernet.EtherTypeIPv6 = 0x%04x, want 0x%04x", got, want)
	}
	if got, want := int(ipv6.ICMPTypeRouterAdvertisement), icmpv6TypeRouterAdvertisement; got != want {
		t.Errorf("int(ipv6.ICMPTypeRouterAdvertisement) = %d, want %d", got, want)
	}
	if got, want := int(ipv6.ICMPTypeNeighborAdvertisement), icmpv6TypeNeighborAdvertisement; got != want {
		t.Errorf("int(ipv6.ICMPTypeNeighborAdvertisement) = %d, want %d", got, want)
	}
}
