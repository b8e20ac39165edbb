package ospf

// PeerRole distinguishes the local router's role on the arrival interface,
// needed for the DR-floods-back / BDR-defers rule in §4.5.
type PeerRole int

const (
	RoleDROther PeerRole = iota
	RoleBackup
	RoleDesignated
)

// FloodTarget is one (interface, neighbor) pair selected to receive a
// flooded LSA.
type FloodTarget struct {
	IfIndex    uint32
	NeighborID uint32
}

// FloodAction records what happened to a single neighbor's ls_request /
// ls_rxmt lists for one flooded LSA, so the caller can apply the mutation
// without the decision function itself touching neighbor state (§9's
// "split reads and writes" borrow discipline).
type FloodAction int

const (
	ActionSkip FloodAction = iota
	ActionMoveRequestToRxmt
	ActionAddRxmtAndSend
)

// FloodCandidate is a read-only snapshot of one neighbor eligible for
// flooding consideration (state >= Exchange on an interface whose scope
// contains the LSA's scope).
type FloodCandidate struct {
	IfIndex       uint32
	NeighborID    uint32
	State         NeighborState
	OnRequestList bool
	IsArrivalIface bool
}

// Decide implements §4.5's per-neighbor flood decision for an LSA just
// installed, given the arrival interface (arrivalIface==0 for a
// self-originated LSA with no arrival source) and the local router's role
// on each candidate's interface. A neighbor with the LSA on its request
// list is always moved to rxmt, since the copy just installed is taken to
// be more recent than whatever that request entry refers to.
func Decide(candidates []FloodCandidate, arrivalIface uint32, role func(ifIndex uint32) PeerRole) (targets []FloodTarget, actions map[FloodTarget]FloodAction, floodedBackOnArrival bool) {
	actions = make(map[FloodTarget]FloodAction)
	for _, c := range candidates {
		if c.State < NeighborExchange {
			continue
		}
		target := FloodTarget{IfIndex: c.IfIndex, NeighborID: c.NeighborID}

		if c.OnRequestList {
			// Local copy just replaced theirs and is therefore more recent:
			// move off the request list onto rxmt instead of requesting.
			actions[target] = ActionMoveRequestToRxmt
			targets = append(targets, target)
			continue
		}

		if c.IfIndex == arrivalIface {
			switch role(c.IfIndex) {
			case RoleBackup:
				// BDR defers: the DR will flood, so skip this neighbor
				// entirely (RFC 2328 §13.3 step 4).
				actions[target] = ActionSkip
				continue
			case RoleDesignated:
				// DR floods back on the arrival interface so the sender
				// takes it as an implicit ack.
				actions[target] = ActionAddRxmtAndSend
				targets = append(targets, target)
				floodedBackOnArrival = true
				continue
			}
		}

		actions[target] = ActionAddRxmtAndSend
		targets = append(targets, target)
	}
	return targets, actions, floodedBackOnArrival
}

// DelayedAckBatch accumulates LSA headers accepted-but-not-flooded-back on
// one interface until the ~0.5*RxmtInterval timer fires, per §4.5.
type DelayedAckBatch struct {
	Headers []DDSummary
}

func (b *DelayedAckBatch) Add(h DDSummary) {
	b.Headers = append(b.Headers, h)
}

func (b *DelayedAckBatch) Drain() []DDSummary {
	out := b.Headers
	b.Headers = nil
	return out
}
