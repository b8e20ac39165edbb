package isis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjFSMLANBringUp(t *testing.T) {
	a := &Adjacency{SystemID: [6]byte{1, 2, 3, 4, 5, 6}, Level: Level1}
	var transitions []AdjacencyState
	f := NewAdjFSM(a)
	f.OnTransition = func(_, new AdjacencyState) { transitions = append(transitions, new) }

	require.Equal(t, AdjDown, a.State)

	f.HelloReceivedLAN(false)
	require.Equal(t, AdjInitializing, a.State)

	f.HelloReceivedLAN(true)
	require.Equal(t, AdjUp, a.State)
	require.Equal(t, []AdjacencyState{AdjInitializing, AdjUp}, transitions)
}

func TestAdjFSMLANContentBearingFirstHello(t *testing.T) {
	a := &Adjacency{SystemID: [6]byte{1}}
	f := NewAdjFSM(a)

	f.HelloReceivedLAN(true)
	require.Equal(t, AdjUp, a.State, "a first Hello that already lists us should go straight to Up")
}

func TestAdjFSMLANStaysUpOnTransientNonListing(t *testing.T) {
	a := &Adjacency{SystemID: [6]byte{1}}
	f := NewAdjFSM(a)
	f.HelloReceivedLAN(true)
	require.Equal(t, AdjUp, a.State)

	f.HelloReceivedLAN(false)
	require.Equal(t, AdjUp, a.State, "only HoldTimerExpired tears down an Up adjacency")
}

func TestAdjFSMP2PThreeWayLadder(t *testing.T) {
	a := &Adjacency{SystemID: [6]byte{1}}
	f := NewAdjFSM(a)

	f.HelloReceivedP2P(ThreeWayDown, true)
	require.Equal(t, AdjInitializing, a.State)

	f.HelloReceivedP2P(ThreeWayInitializing, true)
	require.Equal(t, AdjInitializing, a.State)

	f.HelloReceivedP2P(ThreeWayUp, true)
	require.Equal(t, AdjUp, a.State)
}

func TestAdjFSMP2PNoTLVFallsBackToTwoStateLadder(t *testing.T) {
	a := &Adjacency{SystemID: [6]byte{1}}
	f := NewAdjFSM(a)

	f.HelloReceivedP2P(ThreeWayDown, false)
	require.Equal(t, AdjInitializing, a.State)

	f.HelloReceivedP2P(ThreeWayDown, false)
	require.Equal(t, AdjUp, a.State)
}

func TestAdjFSMHoldTimerExpiredTearsDown(t *testing.T) {
	a := &Adjacency{SystemID: [6]byte{1}}
	f := NewAdjFSM(a)
	f.HelloReceivedLAN(true)
	require.Equal(t, AdjUp, a.State)

	f.HoldTimerExpired()
	require.Equal(t, AdjDown, a.State)
}
