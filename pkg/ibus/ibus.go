// Package ibus implements the inter-process message bus (§4.8): typed
// pub/sub delivery of interface/address/hostname/keychain/SR/BIER/BFD/route
// events between protocol instances. Within a process, instances are
// independent goroutines driven by their own single-threaded event loop
// (§5); ibus is the only channel between them. Delivery is at-least-once;
// consumers must be idempotent, and there is no cross-process reliability
// layer.
package ibus

import "net"

// Topic identifies a message kind on the bus.
type Topic int

const (
	TopicInterfaceUp Topic = iota
	TopicInterfaceDown
	TopicAddrAdd
	TopicAddrDel
	TopicHostnameUpdate
	TopicKeychainUpdate
	TopicSrCfgUpd
	TopicSrCfgEvent
	TopicBierCfgUpd
	TopicBfdStateChange
	TopicRouteIPAdd
	TopicRouteIPDel
)

// InterfaceUp / InterfaceDown carry platform-observed interface state.
type InterfaceUp struct {
	IfIndex uint32
	IfName  string
	MTU     uint32
}

type InterfaceDown struct {
	IfIndex uint32
	IfName  string
}

// AddrAdd / AddrDel carry platform-observed address changes on an
// interface.
type AddrAdd struct {
	IfIndex uint32
	Addr    net.IPNet
}

type AddrDel struct {
	IfIndex uint32
	Addr    net.IPNet
}

// HostnameUpdate carries the system hostname, used by IS-IS dynamic
// hostname TLVs and OSPF show output.
type HostnameUpdate struct {
	Hostname string
}

// KeychainUpdate notifies that a named keychain's snapshot changed; the
// consumer should fetch a fresh immutable snapshot rather than carrying the
// key material inline.
type KeychainUpdate struct {
	Name string
}

// SrCfgUpd carries a new segment-routing configuration snapshot (SRGB/SRLB
// ranges, prefix-SID bindings).
type SrCfgUpd struct {
	SRGBStart, SRGBEnd uint32
	SRLBStart, SRLBEnd uint32
}

// SrCfgEvent carries a narrower SR event (e.g. a single prefix-SID
// binding change) that doesn't warrant a full snapshot refresh.
type SrCfgEvent struct {
	Prefix string
	Index  uint32
}

// BierCfgUpd carries BIER configuration, opaque to the link-state engines
// beyond carry-through in router capability advertisements.
type BierCfgUpd struct {
	SubDomain uint8
	BFRID     uint16
}

// BfdStateChange reports a BFD session transition for a given neighbor key.
type BfdStateChange struct {
	Session string
	Up      bool
}

// NextHop mirrors the southbound route-install nexthop shape (§6).
type NextHop struct {
	IfIndex uint32
	Gateway net.IP
	Labels  []uint32
}

// RouteIPAdd requests installation of a route into the kernel/RIB.
type RouteIPAdd struct {
	Protocol string
	Prefix   string
	Distance uint8
	Metric   uint32
	Tag      uint32
	Opaque   map[string]string
	NextHops []NextHop
}

// RouteIPDel requests withdrawal of a previously installed route.
type RouteIPDel struct {
	Protocol string
	Prefix   string
}

// Message is one envelope carried on the bus.
type Message struct {
	Topic   Topic
	Payload any
}

// Queue is an unbounded, FIFO, single-consumer message queue backed by a
// goroutine and a growable slice, used where consumers cannot tolerate a
// bounded channel silently blocking the producer (§5: "unbounded channels
// are used only where bounded growth is otherwise guaranteed" — subscriber
// count and per-subscriber backlog are both operator-bounded in practice).
type Queue struct {
	in     chan Message
	out    chan Message
	closed chan struct{}
}

// NewQueue starts the pump goroutine and returns a ready Queue.
func NewQueue() *Queue {
	q := &Queue{
		in:     make(chan Message),
		out:    make(chan Message),
		closed: make(chan struct{}),
	}
	go q.pump()
	return q
}

func (q *Queue) pump() {
	var buf []Message
	for {
		if len(buf) == 0 {
			select {
			case m, ok := <-q.in:
				if !ok {
					close(q.out)
					return
				}
				buf = append(buf, m)
			case <-q.closed:
				close(q.out)
				return
			}
			continue
		}
		select {
		case m, ok := <-q.in:
			if !ok {
				close(q.out)
				return
			}
			buf = append(buf, m)
		case q.out <- buf[0]:
			buf = buf[1:]
		case <-q.closed:
			close(q.out)
			return
		}
	}
}

// Send enqueues a message without blocking the producer on consumer speed.
func (q *Queue) Send(m Message) {
	select {
	case q.in <- m:
	case <-q.closed:
	}
}

// C returns the channel consumers range over to receive messages in order.
func (q *Queue) C() <-chan Message { return q.out }

// Close stops the pump goroutine; further Send calls are no-ops.
func (q *Queue) Close() { close(q.closed) }

// Subscriber is a named consumer with its own unbounded queue.
type Subscriber struct {
	Name  string
	Queue *Queue
}

// Bus multicasts published messages to every currently registered
// subscriber (protocol instance); a unicast Publish target is modeled by
// having only one subscriber registered for that topic in practice (the
// spec's producer/consumer table names "platform"/"keychain store"/"SR
// config"/"BFD" as single producers and "all protocols" or a specific
// protocol as consumers — this type does not special-case that, callers
// simply subscribe the set they need).
type Bus struct {
	subs map[string]*Subscriber
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[string]*Subscriber)}
}

// Subscribe registers name with its own unbounded delivery queue and
// returns it so the caller can range over Queue.C().
func (b *Bus) Subscribe(name string) *Subscriber {
	s := &Subscriber{Name: name, Queue: NewQueue()}
	b.subs[name] = s
	return s
}

// Unsubscribe removes and closes a subscriber's queue.
func (b *Bus) Unsubscribe(name string) {
	if s, ok := b.subs[name]; ok {
		s.Queue.Close()
		delete(b.subs, name)
	}
}

// Publish delivers m to every subscriber except excluded names (used so a
// protocol instance doesn't receive its own RouteIPAdd/Del echo back).
func (b *Bus) Publish(m Message, exclude ...string) {
	skip := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}
	for name, s := range b.subs {
		if skip[name] {
			continue
		}
		s.Queue.Send(m)
	}
}

// PublishTo delivers m to exactly one named subscriber (unicast), e.g. a
// RouteIPAdd directed solely at the RIB installer.
func (b *Bus) PublishTo(name string, m Message) {
	if s, ok := b.subs[name]; ok {
		s.Queue.Send(m)
	}
}
