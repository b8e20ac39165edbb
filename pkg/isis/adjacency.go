// Package isis implements the IS-IS adjacency FSM, PDU codec with
// authentication, and LSP database maintenance (§4.1-4.3, C1-C3).
package isis

// AdjacencyState is one of the three IS-IS adjacency states (ISO 10589
// §8.2.5).
type AdjacencyState int

const (
	AdjDown AdjacencyState = iota
	AdjInitializing
	AdjUp
)

func (s AdjacencyState) String() string {
	switch s {
	case AdjDown:
		return "Down"
	case AdjInitializing:
		return "Initializing"
	case AdjUp:
		return "Up"
	default:
		return "Unknown"
	}
}

// Level distinguishes L1/L2 adjacencies.
type Level uint8

const (
	Level1 Level = 1
	Level2 Level = 2
)

// ThreeWayState is how a point-to-point interface reports the peer's view of
// us in the optional Three-Way-Adjacency TLV (ISO 10589 §9.5, RFC 5303).
type ThreeWayState uint8

const (
	ThreeWayUp          ThreeWayState = 0
	ThreeWayInitializing ThreeWayState = 1
	ThreeWayDown        ThreeWayState = 2
)

// Adjacency holds per-neighbor state. On LAN circuits it is keyed by
// source MAC until the first content-bearing Hello re-keys it by
// system-id; on point-to-point circuits it is keyed by system-id from the
// start.
type Adjacency struct {
	SystemID   [6]byte
	SourceMAC  [6]byte
	Level      Level
	State      AdjacencyState
	Priority   uint8
	Holding    uint16 // holding time advertised by the peer, seconds

	// reportedThreeWay is what the peer's last Hello said our state was,
	// from the Three-Way-Adjacency TLV (point-to-point only).
	reportedThreeWay ThreeWayState
	hasThreeWayTLV    bool
}

// AdjFSM drives one Adjacency.
type AdjFSM struct {
	Adjacency *Adjacency
	OnTransition func(old, new AdjacencyState)
}

func NewAdjFSM(a *Adjacency) *AdjFSM {
	a.State = AdjDown
	return &AdjFSM{Adjacency: a}
}

func (f *AdjFSM) transition(to AdjacencyState) {
	old := f.Adjacency.State
	f.Adjacency.State = to
	if f.OnTransition != nil && old != to {
		f.OnTransition(old, to)
	}
}

// HelloReceivedLAN applies the LAN adjacency bring-up rule: any valid Hello
// from an unknown or Down peer moves to Initializing; a Hello listing our
// own system-id among its neighbors (content-bearing) completes the
// adjacency to Up. Only the state changes here; the adjacency is not
// re-keyed by this function.
func (f *AdjFSM) HelloReceivedLAN(listsUs bool) {
	a := f.Adjacency
	switch a.State {
	case AdjDown:
		f.transition(AdjInitializing)
		if listsUs {
			f.transition(AdjUp)
		}
	case AdjInitializing:
		if listsUs {
			f.transition(AdjUp)
		}
	case AdjUp:
		if !listsUs {
			// A Hello that stops listing us while Up does not by itself
			// tear down the adjacency; only HoldTimerExpired does that
			// (the peer may simply have a transient Hello content issue).
		}
	}
}

// HelloReceivedP2P applies the optional Three-Way-Adjacency TLV ladder
// (RFC 5303): the adjacency state is derived from what the peer reports
// our state to be, not purely from receiving any Hello.
func (f *AdjFSM) HelloReceivedP2P(peerReportsUsAs ThreeWayState, hasTLV bool) {
	a := f.Adjacency
	a.reportedThreeWay = peerReportsUsAs
	a.hasThreeWayTLV = hasTLV

	if !hasTLV {
		// No Three-Way TLV: fall back to the plain two-state ladder (any
		// valid Hello from Down moves to Initializing then Up).
		switch a.State {
		case AdjDown:
			f.transition(AdjInitializing)
		case AdjInitializing:
			f.transition(AdjUp)
		}
		return
	}

	switch peerReportsUsAs {
	case ThreeWayDown:
		f.transition(AdjInitializing)
	case ThreeWayInitializing:
		if a.State == AdjDown {
			f.transition(AdjInitializing)
		}
	case ThreeWayUp:
		if a.State != AdjUp {
			f.transition(AdjInitializing)
		}
		f.transition(AdjUp)
	}
}

// HoldTimerExpired tears the adjacency down on holding-time expiry.
func (f *AdjFSM) HoldTimerExpired() {
	f.transition(AdjDown)
}
