package ndp

import (
	"container/list"
	"context"
	"net"
	"sync"
	"testing"
	"time"
)

// fakeSender counts transmissions per interface name without touching a
// real socket, so the scheduler's repeat/timeout laws can be tested at
// millisecond-scale delays instead of real seconds.
type fakeSender struct {
	mu     sync.Mutex
	sends  map[string]int
	handle map[string]*handle
}

func newFakeSender() *fakeSender {
	return &fakeSender{sends: make(map[string]int), handle: make(map[string]*handle)}
}

func (f *fakeSender) Open(name string) (*handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.handle[name]; ok {
		return h, nil
	}
	h := &handle{name: name, mtu: 1 << 20}
	f.handle[name] = h
	return h, nil
}

func (f *fakeSender) Transmit(h *handle, dst net.HardwareAddr, buf []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends[h.name]++
	return nil
}

func (f *fakeSender) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sends[name]
}

func fakeFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := BuildNeighborAdvertisement(
		mustMAC(t, "52:54:00:11:bf:3c"), mustMAC(t, "33:33:00:00:00:01"),
		mustIP(t, "fe80::1"), mustIP(t, "ff02::1"),
		mustIP(t, "fe80::abcd"), mustMAC(t, "52:54:00:11:bf:3c"),
	)
	if err != nil {
		t.Fatalf("fakeFrame: %v", err)
	}
	return f
}

// TestSchedulerOnceLaw is the "scheduler once law": for repeat in {0,1},
// exactly one send occurs (literal scenario 4, at test rather than wall
// clock scale).
func TestSchedulerOnceLaw(t *testing.T) {
	for _, repeat := range []int{0, 1} {
		fs := newFakeSender()
		sched := &Scheduler{registry: fs}
		cmds := list.New()
		cmds.PushBack(&TransmitCommand{Interface: "once", Frame: fakeFrame(t), Repeat: repeat, Timeout: 0})

		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		if err := sched.Run(ctx, cmds); err != nil {
			t.Fatalf("repeat=%d: Run: %v", repeat, err)
		}
		if got := fs.count("once"); got != 1 {
			t.Errorf("repeat=%d: sends = %d, want 1", repeat, got)
		}
	}
}

// TestSchedulerRepeatLaw is the "scheduler repeat law": for a finite
// positive repeat = N, the scheduler performs exactly N sends.
func TestSchedulerRepeatLaw(t *testing.T) {
	fs := newFakeSender()
	sched := &Scheduler{registry: fs}
	cmds := list.New()
	cmds.PushBack(&TransmitCommand{Interface: "rep3", Frame: fakeFrame(t), Repeat: 3, Timeout: 0})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	if err := sched.Run(ctx, cmds); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := fs.count("rep3"); got != 3 {
		t.Errorf("sends = %d, want 3", got)
	}
}

// TestSchedulerInfiniteRepeatNeverRetires exercises the repeat<0 branch:
// the command keeps firing until the context is canceled rather than
// retiring on its own.
func TestSchedulerInfiniteRepeatNeverRetires(t *testing.T) {
	fs := newFakeSender()
	sched := &Scheduler{registry: fs}
	cmds := list.New()
	cmds.PushBack(&TransmitCommand{Interface: "inf", Frame: fakeFrame(t), Repeat: -1, Timeout: 0})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := sched.Run(ctx, cmds)
	if err == nil {
		t.Fatal("expected Run to return the context's cancellation error")
	}
	if fs.count("inf") == 0 {
		t.Error("expected at least one send before cancellation")
	}
}
