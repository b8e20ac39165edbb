// Package transport is the small seam between a protocol engine and real
// sockets that spec.md §9 calls for: "coroutines/async... express each
// instance as a message-pump over a union of event channels." Actual
// packet I/O (raw IP sockets for OSPF/IS-IS multicast Hellos, a listening
// TCP socket for BGP) is explicitly out of scope (spec.md §1 Non-goals);
// what belongs here is the interface boundary that lets pkg/ospf, pkg/isis,
// and pkg/bgp be driven by tests without a real NIC, mirroring the
// teacher's adapters wrapping net.Conn directly rather than hiding it
// behind a mock-friendly interface — the difference here is deliberate:
// a link-state/path-vector engine's test suite needs to inject loss,
// reordering, and partition without a kernel in the loop, which the
// teacher's NFS/SMB connection tests never needed.
package transport

import (
	"context"
	"net"
	"time"
)

// PacketConn is the southbound seam for the OSPF and IS-IS engines: an
// interface-scoped multicast/unicast datagram socket. A production
// implementation wraps golang.org/x/net/ipv4 or ipv6 raw sockets (not
// built here, per the packet-I/O Non-goal); Loopback below is the
// in-process implementation the FSM test suites actually drive.
type PacketConn interface {
	// ReadFrom blocks until a datagram arrives or ctx is done, returning
	// the payload and the interface-local source address it arrived on.
	ReadFrom(ctx context.Context) (payload []byte, src net.Addr, err error)

	// WriteTo sends payload to dst (a unicast peer address or this
	// conn's configured multicast/broadcast group).
	WriteTo(payload []byte, dst net.Addr) error

	// LocalAddr is the address this conn is bound to.
	LocalAddr() net.Addr

	// Close releases the underlying socket and unblocks any pending
	// ReadFrom with an error (ErrClosed for Loopback).
	Close() error
}

// StreamConn is the southbound seam for the BGP engine: a single ordered
// byte stream, matching spec.md §4.3/§5's "messages from a single TCP peer
// are processed strictly in order." A production implementation is a thin
// wrapper over *net.TCPConn; NewDialer and Listen below provide that
// wrapper and PipeStreamConn (loopback.go) provides the in-process test
// double.
type StreamConn interface {
	net.Conn
}

// Dialer opens outbound StreamConns, the seam BGP's Connect/Active states
// call through (spec.md §4.3's Connected(stream, info) / ConnFail events).
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (StreamConn, error)
}

// netDialer is the production Dialer, a thin wrapper over net.Dialer.
type netDialer struct {
	d net.Dialer
}

// NewDialer returns a Dialer backed by the real network stack, with the
// given connect timeout applied per-dial.
func NewDialer(connectTimeout time.Duration) Dialer {
	return &netDialer{d: net.Dialer{Timeout: connectTimeout}}
}

func (n *netDialer) DialContext(ctx context.Context, network, address string) (StreamConn, error) {
	conn, err := n.d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Listener accepts inbound StreamConns, the seam a passive BGP instance's
// Connect/Active states listen through.
type Listener interface {
	Accept(ctx context.Context) (StreamConn, error)
	Addr() net.Addr
	Close() error
}

// netListener wraps a net.Listener, making Accept cancellable via context
// by racing it against ctx.Done() in a goroutine — net.Listener.Accept
// itself has no context parameter.
type netListener struct {
	ln net.Listener
}

// Listen opens a TCP listener on address (typically ":179" for BGP).
func Listen(address string) (Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}
	return &netListener{ln: ln}, nil
}

func (n *netListener) Accept(ctx context.Context) (StreamConn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		conn, err := n.ln.Accept()
		ch <- result{conn, err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return r.conn, nil
	}
}

func (n *netListener) Addr() net.Addr { return n.ln.Addr() }
func (n *netListener) Close() error   { return n.ln.Close() }
