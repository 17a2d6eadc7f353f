package ndp

import "testing"

// TestRegistryUniqueness is the "registry uniqueness" property from §8,
// exercised directly against the sorted-handle invariant without opening
// real sockets.
func TestRegistryUniqueness(t *testing.T) {
	r := &Registry{handles: []*handle{
		{name: "eth1", ifIndex: 1, mtu: 1500},
		{name: "eth0", ifIndex: 3, mtu: 1500},
		{name: "eth2", ifIndex: 7, mtu: 1500},
	}}

	for _, h := range r.handles {
		seen := r.getByIndex(h.ifIndex)
		if seen != h {
			t.Fatalf("getByIndex(%d) = %v, want %v", h.ifIndex, seen, h)
		}
	}

	if got := r.getByIndex(99); got != nil {
		t.Errorf("getByIndex(99) = %v, want nil", got)
	}

	indexes := make(map[int]bool)
	for _, h := range r.handles {
		if indexes[h.ifIndex] {
			t.Fatalf("duplicate ifIndex %d in registry", h.ifIndex)
		}
		indexes[h.ifIndex] = true
	}
}

// TestTransmitMTUGuard is literal scenario 6: a frame larger than the
// handle's MTU is rejected with too-large before any OS send is
// attempted — exercised here via a handle with an invalid fd, so a
// successful send would fail the test with a syscall error instead of
// silently passing.
func TestTransmitMTUGuard(t *testing.T) {
	r := NewRegistry()
	h := &handle{name: "synthetic0", ifIndex: 1, mtu: 128, fd: -1}

	buf := make([]byte, 200)
	err := r.Transmit(h, nil, buf)
	if err == nil {
		t.Fatal("Transmit did not return an error for an oversized frame")
	}

	nerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if nerr.Kind != ErrTooLarge {
		t.Errorf("error kind = %v, want ErrTooLarge", nerr.Kind)
	}
}
