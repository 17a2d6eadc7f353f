package ndp

import (
	"net"
	"sort"
	"sync"
)

// handle is one open sender interface: its raw socket fd plus the
// metadata discovered from the OS at open time.
type handle struct {
	fd      int
	name    string
	ifIndex int
	mtu     int
	hwAddr  net.HardwareAddr
}

// Registry holds at most one handle per interface index, sorted by index
// so that lookups by index are O(log n); lookups by name remain O(n),
// matching the specification's explicit linear-vs-binary split.
type Registry struct {
	mu      sync.Mutex
	handles []*handle
}

// NewRegistry returns an empty sender registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// getOrOpen returns the handle for name, opening and inserting one if none
// exists yet.
func (r *Registry) getOrOpen(name string) (*handle, error) {
	const op = "ndp.Registry.getOrOpen"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range r.handles {
		if h.name == name {
			return h, nil
		}
	}

	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, newError(op, ErrNoDevice, err)
	}

	fd, err := openRawSocket(iface)
	if err != nil {
		return nil, err
	}

	h := &handle{
		fd:      fd,
		name:    iface.Name,
		ifIndex: iface.Index,
		mtu:     iface.MTU,
		hwAddr:  iface.HardwareAddr,
	}

	r.handles = append(r.handles, h)
	sort.Slice(r.handles, func(i, j int) bool {
		return r.handles[i].ifIndex < r.handles[j].ifIndex
	})
	return h, nil
}

// getByIndex returns the handle for ifIndex via binary search, or nil if
// none is open.
func (r *Registry) getByIndex(ifIndex int) *handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := sort.Search(len(r.handles), func(i int) bool {
		return r.handles[i].ifIndex >= ifIndex
	})
	if i < len(r.handles) && r.handles[i].ifIndex == ifIndex {
		return r.handles[i]
	}
	return nil
}

// Open is the entry point the scheduler and listener use: resolve an
// interface name to its handle, opening a raw socket on first use.
func (r *Registry) Open(name string) (*handle, error) {
	return r.getOrOpen(name)
}

// Transmit sends buf out h's interface to dst in a single datagram,
// rejecting it before the OS call if it exceeds the interface MTU.
func (r *Registry) Transmit(h *handle, dst net.HardwareAddr, buf []byte) error {
	const op = "ndp.Registry.Transmit"

	if len(buf) > h.mtu {
		return newError(op, ErrTooLarge, nil)
	}
	return sendRaw(h.fd, h.ifIndex, dst, buf)
}

// Close closes every open handle's socket. It is safe to call once at
// registry teardown.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for _, h := range r.handles {
		if err := closeFD(h.fd); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	r.handles = nil
	return firstErr
}
