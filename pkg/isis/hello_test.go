package isis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLANHelloRoundTrip(t *testing.T) {
	h := LANHello{
		CircuitType: 3,
		SourceID:    [6]byte{1, 2, 3, 4, 5, 6},
		HoldingTime: 30,
		PDULength:   1492,
		Priority:    64,
		LANID:       LSPID{9, 9, 9, 9, 9, 9, 1, 0},
		TLVs: []TLV{
			{Type: TLVAreaAddresses, Value: []byte{3, 0x49, 0, 1}},
			{Type: TLVProtocolsSupported, Value: []byte{0xcc}},
		},
	}
	encoded := EncodeLANHello(h)
	decoded, err := DecodeLANHello(encoded)
	require.NoError(t, err)
	require.Equal(t, h.CircuitType, decoded.CircuitType)
	require.Equal(t, h.SourceID, decoded.SourceID)
	require.Equal(t, h.Priority, decoded.Priority)
	require.Equal(t, h.LANID[:7], decoded.LANID[:7])
	require.Equal(t, h.TLVs, decoded.TLVs)
}

func TestP2PHelloRoundTrip(t *testing.T) {
	h := P2PHello{
		CircuitType:    1,
		SourceID:       [6]byte{1, 1, 1, 1, 1, 1},
		HoldingTime:    9,
		PDULength:      50,
		LocalCircuitID: 2,
		TLVs: []TLV{
			{Type: TLVThreeWayAdjacency, Value: EncodeThreeWayAdjacencyTLV(ThreeWayAdjacencyTLV{State: ThreeWayUp, ExtendedLocalCircuitID: 1})},
		},
	}
	encoded := EncodeP2PHello(h)
	decoded, err := DecodeP2PHello(encoded)
	require.NoError(t, err)
	require.Equal(t, h.LocalCircuitID, decoded.LocalCircuitID)
	require.Equal(t, h.HoldingTime, decoded.HoldingTime)
	require.Len(t, decoded.TLVs, 1)
}

func TestThreeWayAdjacencyTLVRoundTripWithNeighbor(t *testing.T) {
	tv := ThreeWayAdjacencyTLV{
		State:                     ThreeWayInitializing,
		ExtendedLocalCircuitID:    5,
		HasNeighbor:               true,
		NeighborSystemID:          [6]byte{1, 2, 3, 4, 5, 6},
		NeighborExtendedCircuitID: 7,
	}
	encoded := EncodeThreeWayAdjacencyTLV(tv)
	decoded, err := DecodeThreeWayAdjacencyTLV(encoded)
	require.NoError(t, err)
	require.Equal(t, tv, decoded)
}

func TestThreeWayAdjacencyTLVRoundTripWithoutNeighbor(t *testing.T) {
	tv := ThreeWayAdjacencyTLV{State: ThreeWayDown, ExtendedLocalCircuitID: 1}
	encoded := EncodeThreeWayAdjacencyTLV(tv)
	decoded, err := DecodeThreeWayAdjacencyTLV(encoded)
	require.NoError(t, err)
	require.False(t, decoded.HasNeighbor)
	require.Equal(t, tv.State, decoded.State)
}

func TestNeighborsListUs(t *testing.T) {
	ourMAC := [6]byte{1, 2, 3, 4, 5, 6}
	tlvs := []TLV{
		{Type: TLVIsNeighbors, Value: append(append([]byte{}, []byte{9, 9, 9, 9, 9, 9}...), ourMAC[:]...)},
	}
	require.True(t, neighborsListUs(tlvs, ourMAC))

	other := [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	require.False(t, neighborsListUs(tlvs, other))
}
