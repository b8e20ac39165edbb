package ospf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNeighborFSMBringUp(t *testing.T) {
	n := &Neighbor{RouterID: 0x01010101}
	var transitions []NeighborState
	f := NewNeighborFSM(n)
	f.OnTransition = func(old, new NeighborState, reason NeighborEvent) {
		transitions = append(transitions, new)
	}

	require.NoError(t, f.Step(EventHelloRcvd))
	require.Equal(t, NeighborInit, n.State)

	require.NoError(t, f.Step(EventTwoWayRcvd))
	require.Equal(t, NeighborTwoWay, n.State)

	require.NoError(t, f.Step(EventAdjOK))
	require.Equal(t, NeighborExStart, n.State)

	require.NoError(t, f.Step(EventNegotiationDone))
	require.Equal(t, NeighborExchange, n.State)

	n.LSRequest = nil
	require.NoError(t, f.Step(EventExchangeDone))
	require.Equal(t, NeighborFull, n.State)

	require.Equal(t, []NeighborState{NeighborInit, NeighborTwoWay, NeighborExStart, NeighborExchange, NeighborFull}, transitions)
}

func TestNeighborFSMExchangeDoneWithPendingRequestsGoesToLoading(t *testing.T) {
	n := &Neighbor{}
	f := NewNeighborFSM(n)
	n.State = NeighborExchange
	n.LSRequest = []DDSummary{{LSType: 1}}

	require.NoError(t, f.Step(EventExchangeDone))
	require.Equal(t, NeighborLoading, n.State)

	n.LSRequest = nil
	require.NoError(t, f.Step(EventLoadingDone))
	require.Equal(t, NeighborFull, n.State)
}

func TestNeighborFSMSeqNoMismatchResetsToExStart(t *testing.T) {
	n := &Neighbor{}
	f := NewNeighborFSM(n)
	n.State = NeighborFull
	n.LSRxmt = []DDSummary{{LSType: 1}}

	require.NoError(t, f.Step(EventSeqNoMismatch))
	require.Equal(t, NeighborExStart, n.State)
	require.Empty(t, n.LSRxmt, "resetListsAndStart must clear retransmission lists")
}

func TestNeighborFSMKillNbrAlwaysGoesDown(t *testing.T) {
	for _, start := range []NeighborState{NeighborInit, NeighborTwoWay, NeighborFull} {
		n := &Neighbor{}
		f := NewNeighborFSM(n)
		n.State = start
		require.NoError(t, f.Step(EventKillNbr))
		require.Equal(t, NeighborDown, n.State)
	}
}

func TestNegotiateMaster(t *testing.T) {
	require.True(t, NegotiateMaster(2, 1))
	require.False(t, NegotiateMaster(1, 2))
}
