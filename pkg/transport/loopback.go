package transport

import (
	"context"
	"errors"
	"net"
	"sync"
)

// ErrClosed is returned by a closed Loopback's ReadFrom/WriteTo.
var ErrClosed = errors.New("transport: connection closed")

// addr is a trivial net.Addr used by Loopback, keyed by an opaque name
// rather than an IP so test fixtures can use router-id-shaped identifiers
// ("10.0.1.1") without a real network stack resolving them.
type addr struct{ name string }

func (a addr) Network() string { return "loopback" }
func (a addr) String() string  { return a.name }

// Addr builds a net.Addr usable with Loopback/LoopbackFabric.
func Addr(name string) net.Addr { return addr{name: name} }

type datagram struct {
	payload []byte
	src     net.Addr
}

// Loopback is an in-process PacketConn: datagrams written to one Loopback
// via the shared LoopbackFabric are delivered to every other Loopback on
// the same fabric, matching a broadcast-capable interface (the OSPF/IS-IS
// FSM test suites' usual need). Point-to-point tests just use a fabric
// with two members.
type Loopback struct {
	self   net.Addr
	fabric *LoopbackFabric

	mu     sync.Mutex
	inbox  chan datagram
	closed bool
}

// LoopbackFabric is a shared medium a set of Loopback conns attach to,
// modeling one broadcast segment (an Ethernet/LAN interface) or, with two
// members, a point-to-point link.
type LoopbackFabric struct {
	mu      sync.Mutex
	members map[string]*Loopback
}

// NewLoopbackFabric creates an empty shared medium.
func NewLoopbackFabric() *LoopbackFabric {
	return &LoopbackFabric{members: make(map[string]*Loopback)}
}

// Join attaches a new Loopback bound to name to the fabric.
func (f *LoopbackFabric) Join(name string) *Loopback {
	lb := &Loopback{
		self:   addr{name: name},
		fabric: f,
		inbox:  make(chan datagram, 256),
	}
	f.mu.Lock()
	f.members[name] = lb
	f.mu.Unlock()
	return lb
}

func (f *LoopbackFabric) deliver(except string, payload []byte, dst net.Addr) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := append([]byte(nil), payload...)

	if a, ok := dst.(addr); ok && a.name != "" && a.name != broadcastName {
		// Unicast: deliver only to the named member, if present.
		if m, ok := f.members[a.name]; ok && a.name != except {
			select {
			case m.inbox <- datagram{payload: cp, src: addr{name: except}}:
			default:
			}
		}
		return
	}

	for name, m := range f.members {
		if name == except {
			continue
		}
		select {
		case m.inbox <- datagram{payload: cp, src: addr{name: except}}:
		default:
		}
	}
}

// broadcastName is the Loopback.WriteTo destination name that fans a
// datagram out to every other fabric member (the broadcast/multicast
// case OSPF Hello/IS-IS Hello use on a LAN).
const broadcastName = "*"

// Broadcast returns the destination address WriteTo treats as "every
// other member of the fabric."
func Broadcast() net.Addr { return addr{name: broadcastName} }

func (l *Loopback) ReadFrom(ctx context.Context) ([]byte, net.Addr, error) {
	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case d, ok := <-l.inbox:
		if !ok {
			return nil, nil, ErrClosed
		}
		return d.payload, d.src, nil
	}
}

func (l *Loopback) WriteTo(payload []byte, dst net.Addr) error {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return ErrClosed
	}
	l.fabric.deliver(l.self.String(), payload, dst)
	return nil
}

func (l *Loopback) LocalAddr() net.Addr { return l.self }

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	close(l.inbox)
	l.fabric.mu.Lock()
	delete(l.fabric.members, l.self.String())
	l.fabric.mu.Unlock()
	return nil
}

// PipeStreamConn returns a pair of connected in-process StreamConns,
// wrapping net.Pipe for BGP FSM tests that need a full-duplex ordered
// byte stream without a real TCP handshake.
func PipeStreamConn() (StreamConn, StreamConn) {
	a, b := net.Pipe()
	return a, b
}
