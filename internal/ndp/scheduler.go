package ndp

import (
	"container/list"
	"context"
	"net"
	"reflect"
	"time"
)

// minDelay is the "immediate" fire delay used in place of a literal zero
// duration, since time.NewTimer(0) and time.NewTimer(negative) both fire
// on the next scheduler tick anyway but a strictly positive duration keeps
// the timer API honest about "fire now".
const minDelay = time.Nanosecond

// armedTimer is one live entry in the scheduler's timer set: the command
// it belongs to, its *time.Timer, and how many more fires follow the
// pending one (-1 means infinite, mirroring the original's repeat<0
// convention).
type armedTimer struct {
	cmd       *TransmitCommand
	handle    *handle
	timer     *time.Timer
	remaining int
	period    time.Duration
}

// sender is the subset of *Registry the scheduler and listener depend on;
// factoring it out lets tests exercise the event-loop/responder logic
// against a fake that never touches a real socket.
type sender interface {
	Open(name string) (*handle, error)
	Transmit(h *handle, dst net.HardwareAddr, buf []byte) error
}

// Scheduler multiplexes one *time.Timer per transmit command over a single
// readiness wait, the way tx_main multiplexes timerfds over one epoll_wait.
// Since the number of live commands is only known at runtime, the wait is
// built fresh each iteration via reflect.Select instead of a fixed select
// statement.
type Scheduler struct {
	registry sender
}

// NewScheduler returns a scheduler bound to reg for resolving each
// command's sender handle.
func NewScheduler(reg *Registry) *Scheduler {
	return &Scheduler{registry: reg}
}

// Run arms every command in cmds and drives the event loop until the
// command set is empty, ctx is canceled, or a transmit error occurs. A
// transmit error aborts the loop immediately — conservative, deterministic
// offensive-tool behavior per the specification.
func (s *Scheduler) Run(ctx context.Context, cmds *list.List) error {
	const op = "ndp.Scheduler.Run"

	armed := list.New()
	for e := cmds.Front(); e != nil; e = e.Next() {
		cmd := e.Value.(*TransmitCommand)
		h, err := s.registry.Open(cmd.Interface)
		if err != nil {
			return err
		}
		armed.PushBack(newArmedTimer(cmd, h))
	}

	for armed.Len() > 0 {
		cases := make([]reflect.SelectCase, 0, armed.Len()+1)
		elems := make([]*list.Element, 0, armed.Len())

		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(ctx.Done()),
		})
		elems = append(elems, nil)

		for e := armed.Front(); e != nil; e = e.Next() {
			at := e.Value.(*armedTimer)
			cases = append(cases, reflect.SelectCase{
				Dir:  reflect.SelectRecv,
				Chan: reflect.ValueOf(at.timer.C),
			})
			elems = append(elems, e)
		}

		chosen, _, _ := reflect.Select(cases)
		if chosen == 0 {
			return newError(op, ErrFatal, ctx.Err())
		}

		el := elems[chosen]
		at := el.Value.(*armedTimer)

		if err := s.fire(at); err != nil {
			return err
		}

		if at.remaining == 0 {
			armed.Remove(el)
			continue
		}
		if at.remaining > 0 {
			at.remaining--
		}
		at.timer.Reset(at.period)
	}
	return nil
}

// newArmedTimer computes the initial delay/period/remaining-count for cmd
// per the per-command timer programming rules:
//   - repeat == 0 or 1: one-shot at timeout seconds (or minDelay if
//     timeout <= 0), then retire.
//   - repeat > 1 or < 0: fire immediately, then periodic at timeout
//     seconds; finite repeats decrement, infinite (repeat < 0) never do.
func newArmedTimer(cmd *TransmitCommand, h *handle) *armedTimer {
	delay := time.Duration(cmd.Timeout) * time.Second
	if delay <= 0 {
		delay = minDelay
	}

	switch {
	case cmd.Repeat == 0 || cmd.Repeat == 1:
		return &armedTimer{cmd: cmd, handle: h, timer: time.NewTimer(delay), remaining: 0, period: delay}
	case cmd.Repeat < 0:
		return &armedTimer{cmd: cmd, handle: h, timer: time.NewTimer(minDelay), remaining: -1, period: delay}
	default: // cmd.Repeat > 1
		return &armedTimer{cmd: cmd, handle: h, timer: time.NewTimer(minDelay), remaining: cmd.Repeat - 1, period: delay}
	}
}

// fire serializes and sends at's command's frame, draining any pending
// timer expiration per the FIRING state's "consume the expiration count"
// step (time.Timer only ever carries one pending fire, so this is a no-op
// beyond the receive reflect.Select already performed).
func (s *Scheduler) fire(at *armedTimer) error {
	buf := at.cmd.Frame.Bytes()
	var dst net.HardwareAddr = at.cmd.DstEth
	return s.registry.Transmit(at.handle, dst, buf)
}
