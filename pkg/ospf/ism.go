package ospf

import "sort"

// InterfaceState is one of the seven OSPF interface states (RFC 2328
// §9.1).
type InterfaceState int

const (
	IfDown InterfaceState = iota
	IfLoopback
	IfWaiting
	IfPointToPoint
	IfDROther
	IfBackup
	IfDR
)

func (s InterfaceState) String() string {
	switch s {
	case IfDown:
		return "Down"
	case IfLoopback:
		return "Loopback"
	case IfWaiting:
		return "Waiting"
	case IfPointToPoint:
		return "Point-to-Point"
	case IfDROther:
		return "DROther"
	case IfBackup:
		return "Backup"
	case IfDR:
		return "DR"
	default:
		return "Unknown"
	}
}

// InterfaceEvent is one of the ISM inputs from RFC 2328 §9.3.
type InterfaceEvent int

const (
	IfEventUp InterfaceEvent = iota
	IfEventWaitTimer
	IfEventBackupSeen
	IfEventNeighborChange
	IfEventLoopInd
	IfEventUnloopInd
	IfEventDown
)

// NetworkType selects which ISM transitions are reachable; point-to-point
// and virtual links skip DR election entirely.
type NetworkType int

const (
	NetBroadcast NetworkType = iota
	NetNBMA
	NetPointToPoint
	NetPointToMultipoint
	NetVirtualLink
)

// Interface holds per-link ISM state plus the fields DR election reads.
type Interface struct {
	NetworkType NetworkType
	State       InterfaceState
	RouterID    uint32
	Address     uint32
	Priority    uint8

	DR, BDR uint32 // router-ids; 0 means none elected
}

// ElectionCandidate is a neighbor eligible for DR/BDR election: priority >
// 0 and state >= TwoWay (RFC 2328 §9.4).
type ElectionCandidate struct {
	RouterID uint32
	Address  uint32
	Priority uint8
	DR, BDR  uint32 // what this neighbor is currently advertising
}

// InterfaceFSM drives one Interface.
type InterfaceFSM struct {
	Interface    *Interface
	OnTransition func(old, new InterfaceState, reason InterfaceEvent)
}

func NewInterfaceFSM(i *Interface) *InterfaceFSM {
	i.State = IfDown
	return &InterfaceFSM{Interface: i}
}

func (f *InterfaceFSM) transition(to InterfaceState, ev InterfaceEvent) {
	old := f.Interface.State
	f.Interface.State = to
	if f.OnTransition != nil && old != to {
		f.OnTransition(old, to, ev)
	}
}

// Step applies ev. candidates is consulted only on events that may
// change DR/BDR (Up-completion-of-Waiting via WaitTimer/BackupSeen, and
// NeighborChange); it may be nil for events that don't need it.
func (f *InterfaceFSM) Step(ev InterfaceEvent, candidates []ElectionCandidate) {
	i := f.Interface
	switch ev {
	case IfEventUp:
		if i.State != IfDown {
			return
		}
		switch i.NetworkType {
		case NetPointToPoint, NetPointToMultipoint, NetVirtualLink:
			f.transition(IfPointToPoint, ev)
		default:
			if i.Priority == 0 {
				f.transition(IfDROther, ev)
			} else {
				f.transition(IfWaiting, ev)
			}
		}
	case IfEventWaitTimer, IfEventBackupSeen:
		if i.State == IfWaiting {
			f.runElection(candidates)
		}
	case IfEventNeighborChange:
		if i.State == IfDROther || i.State == IfBackup || i.State == IfDR {
			f.runElection(candidates)
		}
	case IfEventLoopInd:
		f.transition(IfLoopback, ev)
	case IfEventUnloopInd:
		if i.State == IfLoopback {
			f.transition(IfDown, ev)
		}
	case IfEventDown:
		i.DR, i.BDR = 0, 0
		f.transition(IfDown, ev)
	}
}

func (f *InterfaceFSM) runElection(candidates []ElectionCandidate) {
	i := f.Interface
	self := ElectionCandidate{RouterID: i.RouterID, Address: i.Address, Priority: i.Priority, DR: i.DR, BDR: i.BDR}
	newDR, newBDR := ElectDRBDR(self, candidates)

	i.DR, i.BDR = newDR, newBDR

	switch {
	case newDR == i.RouterID:
		f.transition(IfDR, IfEventNeighborChange)
	case newBDR == i.RouterID:
		f.transition(IfBackup, IfEventNeighborChange)
	default:
		f.transition(IfDROther, IfEventNeighborChange)
	}
}

// ElectDRBDR implements RFC 2328 §9.4's two-pass election: first elect the
// BDR (preferring an existing BDR, else highest priority/router-id among
// routers not declaring themselves DR), then elect the DR (preferring an
// existing DR, else the BDR just elected), then re-run once if the
// local router's own role changed as a result, per "repeat if the router's
// own role changed" in §4.4.
func ElectDRBDR(self ElectionCandidate, others []ElectionCandidate) (dr, bdr uint32) {
	all := append([]ElectionCandidate{self}, others...)
	dr, bdr = electOnce(all)

	// Re-run once: update self's view of DR/BDR as the other candidates
	// would see it, since self's own DR/BDR fields feed the preference for
	// "is declaring itself" in the second pass.
	for idx := range all {
		if all[idx].RouterID == self.RouterID {
			all[idx].DR, all[idx].BDR = dr, bdr
		}
	}
	dr2, bdr2 := electOnce(all)
	if dr2 != dr || bdr2 != bdr {
		return dr2, bdr2
	}
	return dr, bdr
}

func electOnce(all []ElectionCandidate) (dr, bdr uint32) {
	eligible := make([]ElectionCandidate, 0, len(all))
	for _, c := range all {
		if c.Priority > 0 {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return 0, 0
	}

	// BDR election: candidates not declaring themselves DR.
	bdrCandidates := make([]ElectionCandidate, 0, len(eligible))
	declaringDR := make([]ElectionCandidate, 0)
	for _, c := range eligible {
		if c.DR == c.RouterID {
			declaringDR = append(declaringDR, c)
		} else {
			bdrCandidates = append(bdrCandidates, c)
		}
	}
	bdrPool := bdrCandidates
	if len(bdrPool) == 0 {
		bdrPool = eligible
	}
	declaringBDR := filterDeclaringBDR(bdrPool)
	bdr = pickHighest(declaringBDR, bdrPool)

	// DR election: candidates declaring themselves DR, else the elected BDR.
	var dr32 uint32
	if len(declaringDR) > 0 {
		dr32 = pickHighest(declaringDR, declaringDR)
	} else {
		dr32 = bdr
	}
	return dr32, bdr
}

func filterDeclaringBDR(pool []ElectionCandidate) []ElectionCandidate {
	var out []ElectionCandidate
	for _, c := range pool {
		if c.BDR == c.RouterID {
			out = append(out, c)
		}
	}
	return out
}

// pickHighest returns the router-id of the highest priority/router-id
// candidate in preferred, falling back to fallback if preferred is empty.
func pickHighest(preferred, fallback []ElectionCandidate) uint32 {
	pool := preferred
	if len(pool) == 0 {
		pool = fallback
	}
	if len(pool) == 0 {
		return 0
	}
	sorted := append([]ElectionCandidate(nil), pool...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority > sorted[j].Priority
		}
		return sorted[i].RouterID > sorted[j].RouterID
	})
	return sorted[0].RouterID
}
