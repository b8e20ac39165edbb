package bgp

import (
	"testing"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestPathAttributeRoundTripShortAndExtendedLength(t *testing.T) {
	short := PathAttribute{Flags: FlagTransitive, Type: AttrOrigin, Value: []byte{0}}
	w := wire.NewWriter(8)
	EncodePathAttribute(w, short)
	decoded, err := DecodePathAttribute(wire.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, short, decoded)

	long := PathAttribute{Flags: FlagOptional | FlagTransitive | FlagExtendedLen, Type: AttrASPath, Value: make([]byte, 300)}
	w2 := wire.NewWriter(320)
	EncodePathAttribute(w2, long)
	decoded2, err := DecodePathAttribute(wire.NewReader(w2.Bytes()))
	require.NoError(t, err)
	require.Len(t, decoded2.Value, 300)
}

func TestDecodePathAttributesMalformedWellKnownIsReset(t *testing.T) {
	// A truncated NEXT_HOP (well-known mandatory) must be a session error.
	w := wire.NewWriter(4)
	w.Uint8(FlagTransitive)
	w.Uint8(uint8(AttrNextHop))
	w.Uint8(10) // claims 10 bytes but none follow
	_, err := DecodePathAttributes(w.Bytes())
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	require.Equal(t, ErrReset, de.Kind)
}

func TestDecodePathAttributesMalformedOptionalIsTreatAsWithdraw(t *testing.T) {
	w := wire.NewWriter(4)
	w.Uint8(FlagOptional | FlagTransitive)
	w.Uint8(uint8(AttrLargeCommunities))
	w.Uint8(12) // claims 12 but none follow
	_, err := DecodePathAttributes(w.Bytes())
	require.Error(t, err)
	de, ok := err.(*DecodeError)
	require.True(t, ok)
	require.Equal(t, ErrTreatAsWithdraw, de.Kind)
}

func TestASPathEncodeDecodeTwoOctet(t *testing.T) {
	segs := []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{65001, 65002}}}
	encoded := EncodeASPath(segs, false)
	decoded, err := DecodeASPath(encoded, false)
	require.NoError(t, err)
	require.Equal(t, segs, decoded)
}

func TestASPathEncodeDecodeFourOctet(t *testing.T) {
	segs := []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{4200000001, 65002}}}
	encoded := EncodeASPath(segs, true)
	decoded, err := DecodeASPath(encoded, true)
	require.NoError(t, err)
	require.Equal(t, segs, decoded)
}

func TestContainsAS(t *testing.T) {
	segs := []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{1, 2, 3}}}
	require.True(t, ContainsAS(segs, 2))
	require.False(t, ContainsAS(segs, 99))
}

func TestPrependASCreatesSequenceWhenEmpty(t *testing.T) {
	out := PrependAS(nil, 65000)
	require.Len(t, out, 1)
	require.Equal(t, []uint32{65000}, out[0].ASNs)
}

func TestPrependASOnExistingSequence(t *testing.T) {
	segs := []ASPathSegment{{Type: SegTypeASSequence, ASNs: []uint32{2, 3}}}
	out := PrependAS(segs, 1)
	require.Equal(t, []uint32{1, 2, 3}, out[0].ASNs)
}

func TestPrependASBeforeLeadingSet(t *testing.T) {
	segs := []ASPathSegment{{Type: SegTypeASSet, ASNs: []uint32{5, 6}}}
	out := PrependAS(segs, 1)
	require.Len(t, out, 2)
	require.Equal(t, SegTypeASSequence, out[0].Type)
	require.Equal(t, []uint32{1}, out[0].ASNs)
}

func TestCommunitiesRoundTrip(t *testing.T) {
	cs := []uint32{CommunityNoExport, 0x00010002}
	encoded := EncodeCommunities(cs)
	require.Equal(t, cs, DecodeCommunities(encoded))
}

func TestLargeCommunitiesRoundTrip(t *testing.T) {
	cs := []LargeCommunity{{GlobalAdmin: 65001, Local1: 1, Local2: 2}}
	encoded := EncodeLargeCommunities(cs)
	require.Equal(t, cs, DecodeLargeCommunities(encoded))
}

func TestHasWellKnownCommunity(t *testing.T) {
	attrs := []PathAttribute{
		{Type: AttrCommunities, Value: EncodeCommunities([]uint32{CommunityNoAdvertise})},
	}
	require.True(t, HasWellKnownCommunity(attrs, CommunityNoAdvertise))
	require.False(t, HasWellKnownCommunity(attrs, CommunityNoExport))
}
