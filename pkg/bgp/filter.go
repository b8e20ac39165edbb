package bgp

// PeerKind distinguishes an internal (same-AS, iBGP) peer from an
// external (eBGP) one, since the distribute filter's split-horizon rule
// only applies between iBGP peers.
type PeerKind int

const (
	PeerExternal PeerKind = iota
	PeerInternal
)

// FilterDecision is the distribute filter's verdict for one candidate
// route being considered for advertisement to a given neighbor.
type FilterDecision int

const (
	FilterAdvertise FilterDecision = iota
	FilterSuppress
)

// FilterInput bundles the per-candidate-route facts the distribute filter
// needs: the route's AS_PATH, its source peer's kind, the community set
// already attached, and the destination neighbor being considered.
type FilterInput struct {
	ASPath          []ASPathSegment
	SourceKind      PeerKind
	SourcePeerAS    uint32 // the AS the route was learned from, for split-horizon
	Communities     []uint32
	DestKind        PeerKind
	DestPeerAS      uint32
	DestAllowASIn   bool // holo-bgp-style per-neighbor override, see DESIGN.md
	LocalAS         uint32
}

// Apply runs the distribute filter rules in order: well-known community
// suppression, iBGP/iBGP split-horizon, then AS-path loop detection
// (skipped when the destination neighbor has AllowASIn set, letting a
// route re-enter an AS it already traversed — used for some route-
// reflector-less multi-homing designs).
func Apply(in FilterInput) FilterDecision {
	if HasWellKnownCommunityValue(in.Communities, CommunityNoAdvertise) {
		return FilterSuppress
	}
	if in.DestKind == PeerExternal && HasWellKnownCommunityValue(in.Communities, CommunityNoExport) {
		return FilterSuppress
	}
	if in.DestKind == PeerExternal && in.DestPeerAS != in.LocalAS &&
		HasWellKnownCommunityValue(in.Communities, CommunityNoExportSubconfed) {
		return FilterSuppress
	}

	// iBGP split-horizon: a route learned from an internal peer is never
	// re-advertised to another internal peer (RFC 4271 §9.1.2), since a
	// full iBGP mesh (or route reflection, out of scope here) is assumed to
	// already have delivered it directly.
	if in.SourceKind == PeerInternal && in.DestKind == PeerInternal {
		return FilterSuppress
	}

	if !in.DestAllowASIn && ContainsAS(in.ASPath, in.DestPeerAS) {
		return FilterSuppress
	}

	return FilterAdvertise
}

func HasWellKnownCommunityValue(cs []uint32, want uint32) bool {
	for _, c := range cs {
		if c == want {
			return true
		}
	}
	return false
}
