package bgp

import (
	"testing"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	w := wire.NewWriter(19)
	EncodeHeader(w, Header{Length: 29, Type: MsgOpen})
	decoded, err := DecodeHeader(wire.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, uint16(29), decoded.Length)
	require.Equal(t, MsgOpen, decoded.Type)
}

func TestHeaderRejectsBadMarker(t *testing.T) {
	buf := make([]byte, 19)
	buf[0] = 0x00
	_, err := DecodeHeader(wire.NewReader(buf))
	require.Error(t, err)
}

func TestOpenRoundTripWithCapabilities(t *testing.T) {
	o := Open{
		Version:  4,
		MyAS:     65001,
		HoldTime: 90,
		BGPID:    0x0a000001,
		Capabilities: []Capability{
			{Code: CapAS4, Value: []byte{0, 1, 0xfd, 0xe9}},
			{Code: CapMultiprotocol, Value: []byte{0, 1, 0, 1}},
		},
	}
	encoded := EncodeOpen(o)
	decoded, err := DecodeOpen(encoded)
	require.NoError(t, err)
	require.Equal(t, o.MyAS, decoded.MyAS)
	require.Equal(t, o.BGPID, decoded.BGPID)
	require.Len(t, decoded.Capabilities, 2)
}

func TestDecodeOpenRejectsBadVersion(t *testing.T) {
	w := wire.NewWriter(10)
	w.Uint8(5)
	w.Uint16(1)
	w.Uint16(90)
	w.Uint32(1)
	w.Uint8(0)
	_, err := DecodeOpen(w.Bytes())
	require.Error(t, err)
}

func TestNegotiateCapabilitiesIntersection(t *testing.T) {
	local := []Capability{{Code: CapAS4}, {Code: CapMultiprotocol}, {Code: CapGracefulRestart}}
	peer := []Capability{{Code: CapAS4}, {Code: CapRouteRefresh}}
	got := NegotiateCapabilities(local, peer)
	require.Equal(t, []uint8{CapAS4}, got)
}

func TestValidateOpenAcceptsMatchingPeer(t *testing.T) {
	o := Open{Version: 4, MyAS: 65002, BGPID: 0x0a000002}
	cfg := Config{PeerAS: 65002, LocalID: 0x0a000001}
	sub, err := ValidateOpen(o, cfg)
	require.NoError(t, err)
	require.Zero(t, sub)
}

func TestValidateOpenRejectsMismatchedPeerAS(t *testing.T) {
	o := Open{Version: 4, MyAS: 65099, BGPID: 0x0a000002}
	cfg := Config{PeerAS: 65002, LocalID: 0x0a000001}
	sub, err := ValidateOpen(o, cfg)
	require.Error(t, err)
	require.Equal(t, SubcodeBadPeerAS, sub)
}

func TestValidateOpenPrefersAS4Capability(t *testing.T) {
	o := Open{
		Version: 4,
		MyAS:    23456, // AS_TRANS
		BGPID:   0x0a000002,
		Capabilities: []Capability{
			{Code: CapAS4, Value: []byte{0, 1, 0x00, 0x02}}, // AS 65538
		},
	}
	cfg := Config{PeerAS: 65538, LocalID: 0x0a000001}
	sub, err := ValidateOpen(o, cfg)
	require.NoError(t, err)
	require.Zero(t, sub)
}

func TestValidateOpenRejectsCollidingBGPIdentifier(t *testing.T) {
	o := Open{Version: 4, MyAS: 65002, BGPID: 0x0a000001}
	cfg := Config{PeerAS: 65002, LocalID: 0x0a000001}
	sub, err := ValidateOpen(o, cfg)
	require.Error(t, err)
	require.Equal(t, SubcodeBadBGPIdentifier, sub)
}

func TestNotificationRoundTrip(t *testing.T) {
	n := Notification{Code: NotifHoldTimerExpired, Subcode: 0, Data: nil}
	encoded := EncodeNotification(n)
	decoded, err := DecodeNotification(encoded)
	require.NoError(t, err)
	require.Equal(t, n.Code, decoded.Code)
}

func TestPrefixRoundTrip(t *testing.T) {
	p := Prefix{Length: 24, Bytes: []byte{10, 0, 1}}
	w := wire.NewWriter(4)
	EncodePrefix(w, p)
	decoded, err := DecodePrefix(wire.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, p, decoded)
	require.Equal(t, "10.0.1.0/24", p.String())
}

func TestUpdateRoundTripWithdrawAndNLRI(t *testing.T) {
	u := Update{
		WithdrawnRoutes: []Prefix{{Length: 8, Bytes: []byte{10}}},
		PathAttributes: []PathAttribute{
			{Flags: FlagTransitive, Type: AttrOrigin, Value: []byte{0}},
			{Flags: FlagTransitive, Type: AttrNextHop, Value: []byte{192, 168, 1, 1}},
		},
		NLRI: []Prefix{{Length: 24, Bytes: []byte{192, 168, 2}}},
	}
	encoded := EncodeUpdate(u)
	decoded, err := DecodeUpdate(encoded)
	require.NoError(t, err)
	require.Equal(t, u.WithdrawnRoutes, decoded.WithdrawnRoutes)
	require.Len(t, decoded.PathAttributes, 2)
	require.Equal(t, u.NLRI, decoded.NLRI)
}
