package ospf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloodDecideSkipsBDROnArrivalInterface(t *testing.T) {
	candidates := []FloodCandidate{
		{IfIndex: 1, NeighborID: 2, State: NeighborFull, IsArrivalIface: true},
	}
	role := func(uint32) PeerRole { return RoleBackup }
	targets, actions, floodedBack := Decide(candidates, 1, role)
	require.Empty(t, targets)
	require.Equal(t, ActionSkip, actions[FloodTarget{IfIndex: 1, NeighborID: 2}])
	require.False(t, floodedBack)
}

func TestFloodDecideDRFloodsBackOnArrival(t *testing.T) {
	candidates := []FloodCandidate{
		{IfIndex: 1, NeighborID: 2, State: NeighborFull, IsArrivalIface: true},
	}
	role := func(uint32) PeerRole { return RoleDesignated }
	targets, actions, floodedBack := Decide(candidates, 1, role)
	require.Len(t, targets, 1)
	require.Equal(t, ActionAddRxmtAndSend, actions[targets[0]])
	require.True(t, floodedBack)
}

func TestFloodDecideMovesRequestListEntryToRxmt(t *testing.T) {
	candidates := []FloodCandidate{
		{IfIndex: 3, NeighborID: 4, State: NeighborExchange, OnRequestList: true},
	}
	targets, actions, _ := Decide(candidates, 0, func(uint32) PeerRole { return RoleDROther })
	require.Len(t, targets, 1)
	require.Equal(t, ActionMoveRequestToRxmt, actions[targets[0]])
}

func TestFloodDecideSkipsBelowExchange(t *testing.T) {
	candidates := []FloodCandidate{
		{IfIndex: 1, NeighborID: 2, State: NeighborInit},
	}
	targets, _, _ := Decide(candidates, 0, func(uint32) PeerRole { return RoleDROther })
	require.Empty(t, targets)
}

func TestDelayedAckBatch(t *testing.T) {
	var b DelayedAckBatch
	b.Add(DDSummary{LSType: 1})
	b.Add(DDSummary{LSType: 2})
	drained := b.Drain()
	require.Len(t, drained, 2)
	require.Empty(t, b.Headers)
}
