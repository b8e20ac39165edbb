package bgp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterSuppressesNoAdvertise(t *testing.T) {
	d := Apply(FilterInput{
		Communities: []uint32{CommunityNoAdvertise},
		DestKind:    PeerExternal,
	})
	require.Equal(t, FilterSuppress, d)
}

func TestFilterSuppressesNoExportToEBGP(t *testing.T) {
	d := Apply(FilterInput{
		Communities: []uint32{CommunityNoExport},
		DestKind:    PeerExternal,
	})
	require.Equal(t, FilterSuppress, d)
}

func TestFilterAllowsNoExportToIBGP(t *testing.T) {
	d := Apply(FilterInput{
		Communities: []uint32{CommunityNoExport},
		SourceKind:  PeerExternal,
		DestKind:    PeerInternal,
	})
	require.Equal(t, FilterAdvertise, d)
}

func TestFilterSplitHorizonIBGPToIBGP(t *testing.T) {
	d := Apply(FilterInput{
		SourceKind: PeerInternal,
		DestKind:   PeerInternal,
	})
	require.Equal(t, FilterSuppress, d)
}

func TestFilterASPathLoopDetection(t *testing.T) {
	d := Apply(FilterInput{
		ASPath:     []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{65002}}},
		SourceKind: PeerExternal,
		DestKind:   PeerExternal,
		DestPeerAS: 65002,
	})
	require.Equal(t, FilterSuppress, d)
}

func TestFilterAllowASInOverridesLoopDetection(t *testing.T) {
	d := Apply(FilterInput{
		ASPath:        []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{65002}}},
		SourceKind:    PeerExternal,
		DestKind:      PeerExternal,
		DestPeerAS:    65002,
		DestAllowASIn: true,
	})
	require.Equal(t, FilterAdvertise, d)
}

func TestFilterAdvertisesCleanRoute(t *testing.T) {
	d := Apply(FilterInput{
		ASPath:     []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{65001}}},
		SourceKind: PeerExternal,
		DestKind:   PeerExternal,
		DestPeerAS: 65003,
	})
	require.Equal(t, FilterAdvertise, d)
}
