// Package ospf implements the OSPFv2/v3 neighbor and interface state
// machines, LSA codec and authentication, flooding, and DR/BDR election
// (§4.1-4.5, C1-C5). Each Instance is driven from a single goroutine event
// loop per §5; NeighborFSM and InterfaceFSM are not safe for concurrent use.
package ospf

import "fmt"

// NeighborState is one of the eight OSPF neighbor states (RFC 2328 §10.1).
type NeighborState int

const (
	NeighborDown NeighborState = iota
	NeighborAttempt
	NeighborInit
	NeighborTwoWay
	NeighborExStart
	NeighborExchange
	NeighborLoading
	NeighborFull
)

func (s NeighborState) String() string {
	switch s {
	case NeighborDown:
		return "Down"
	case NeighborAttempt:
		return "Attempt"
	case NeighborInit:
		return "Init"
	case NeighborTwoWay:
		return "TwoWay"
	case NeighborExStart:
		return "ExStart"
	case NeighborExchange:
		return "Exchange"
	case NeighborLoading:
		return "Loading"
	case NeighborFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// NeighborEvent is one of the FSM inputs from RFC 2328 §10.3.
type NeighborEvent int

const (
	EventHelloRcvd NeighborEvent = iota
	EventStart
	EventTwoWayRcvd
	EventNegotiationDone
	EventExchangeDone
	EventBadLsReq
	EventLoadingDone
	EventAdjOK
	EventSeqNoMismatch
	EventOneWayRcvd
	EventKillNbr
	EventInactivityTimer
	EventLLDown
)

func (e NeighborEvent) String() string {
	names := [...]string{
		"HelloRcvd", "Start", "TwoWayRcvd", "NegotiationDone", "ExchangeDone",
		"BadLSReq", "LoadingDone", "AdjOK?", "SeqNumberMismatch", "1-WayRcvd",
		"KillNbr", "InactivityTimer", "LLDown",
	}
	if int(e) < len(names) {
		return names[e]
	}
	return "Unknown"
}

// DDSummary is one LSA header entry carried in a Database Description
// exchange, used to populate db_summary / ls_request.
type DDSummary struct {
	LSType      uint8
	LSID        uint32
	AdvRouter   uint32
	SeqNo       uint32
	Checksum    uint16
	Age         uint16
}

// Neighbor holds the per-peer FSM state and the four lists from §3:
// db_summary, ls_request, ls_request_pending, ls_rxmt.
type Neighbor struct {
	RouterID  uint32
	Address   uint32 // IPv4 source address (OSPFv2); interface ID for v3 callers layered on top
	State     NeighborState
	Priority  uint8
	IsMaster  bool // master/slave role from DD negotiation (higher router-id wins => master)
	DDSeqNo   uint32
	Options   uint8

	DBSummary         []DDSummary
	LSRequest         []DDSummary
	LSRequestPending  []DDSummary
	LSRxmt            []DDSummary

	lastDDSent []byte // exact bytes of the last DbDesc sent, for retransmission

	// eligibility for DR/BDR election, mirrored from the interface's view
	// of the neighbor's advertised DR/BDR in its last Hello.
	DR, BDR uint32
}

// onTransition is invoked after every successful transition with the old
// and new state, so the owning Instance can trigger side effects (SPF
// delay FSM kick, adjacency teardown, router-LSA reorigination) without the
// FSM itself depending on those packages.
type NeighborFSM struct {
	Neighbor *Neighbor
	OnTransition func(old, new NeighborState, reason NeighborEvent)
}

// NewNeighborFSM returns a FSM wrapping n, starting in NeighborDown.
func NewNeighborFSM(n *Neighbor) *NeighborFSM {
	n.State = NeighborDown
	return &NeighborFSM{Neighbor: n}
}

func (f *NeighborFSM) transition(to NeighborState, ev NeighborEvent) {
	old := f.Neighbor.State
	f.Neighbor.State = to
	if f.OnTransition != nil && old != to {
		f.OnTransition(old, to, ev)
	}
}

// Step applies ev to the FSM per RFC 2328's neighbor state machine table.
// It returns an error only for events that are structurally invalid in
// every state (there are none defined here; all events are handled,
// matching RFC 2328's "no-op in most states" behavior for misapplied
// events).
func (f *NeighborFSM) Step(ev NeighborEvent) error {
	n := f.Neighbor
	switch ev {
	case EventHelloRcvd:
		if n.State == NeighborDown {
			f.transition(NeighborInit, ev)
		}
		// Attempt stays Attempt->Init as well per RFC 2328 table; Down
		// covered above, all higher states ignore a bare HelloRcvd (the
		// "alive" signal is handled by resetting the inactivity timer
		// outside the FSM, not by a transition).
		if n.State == NeighborAttempt {
			f.transition(NeighborInit, ev)
		}
	case EventStart:
		if n.State == NeighborDown {
			f.transition(NeighborAttempt, ev)
		}
	case EventTwoWayRcvd:
		if n.State == NeighborInit {
			// Caller decides eligibility (no adjacency needed e.g. DROther-DROther
			// on broadcast); OnTransition target still reflects TwoWay first,
			// adjacency formation is signaled via the reason on ExStart entry.
			f.transition(NeighborTwoWay, ev)
		}
	case EventNegotiationDone:
		if n.State == NeighborExStart {
			f.transition(NeighborExchange, ev)
		}
	case EventExchangeDone:
		if n.State == NeighborExchange {
			if len(n.LSRequest) == 0 {
				f.transition(NeighborFull, ev)
			} else {
				f.transition(NeighborLoading, ev)
			}
		}
	case EventBadLsReq:
		if n.State >= NeighborExchange {
			resetListsAndStart(n)
			f.transition(NeighborExStart, ev)
		}
	case EventLoadingDone:
		if n.State == NeighborLoading {
			f.transition(NeighborFull, ev)
		}
	case EventAdjOK:
		switch n.State {
		case NeighborTwoWay:
			// Adjacency should now be established; go to ExStart.
			f.transition(NeighborExStart, ev)
		case NeighborExStart, NeighborExchange, NeighborLoading, NeighborFull:
			// Adjacency should no longer be established; tear it down.
			resetListsAndStart(n)
			f.transition(NeighborTwoWay, ev)
		}
	case EventSeqNoMismatch:
		if n.State >= NeighborExchange {
			resetListsAndStart(n)
			f.transition(NeighborExStart, ev)
		}
	case EventOneWayRcvd:
		if n.State >= NeighborTwoWay {
			resetListsAndStart(n)
			f.transition(NeighborInit, ev)
		}
	case EventKillNbr, EventLLDown, EventInactivityTimer:
		resetListsAndStart(n)
		f.transition(NeighborDown, ev)
	default:
		return fmt.Errorf("ospf: unknown neighbor event %v", ev)
	}
	return nil
}

func resetListsAndStart(n *Neighbor) {
	n.DBSummary = nil
	n.LSRequest = nil
	n.LSRequestPending = nil
	n.LSRxmt = nil
	n.lastDDSent = nil
}

// NegotiateMaster applies RFC 2328 §10.6's master/slave election: the
// higher router-id becomes master and owns dd_seq_no increments.
func NegotiateMaster(localRouterID, peerRouterID uint32) (isMaster bool) {
	return localRouterID > peerRouterID
}
