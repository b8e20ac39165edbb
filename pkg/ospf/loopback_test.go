package ospf

import (
	"context"
	"testing"
	"time"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/routeflow/ribd/pkg/transport"
	"github.com/stretchr/testify/require"
)

// TestHelloRoundTripsOverLoopback drives an encoded Hello PDU across
// pkg/transport's in-process Loopback fabric end to end: one side writes
// the same bytes EncodeHello/EncodeHeader would produce on a real
// interface, the other reads them off the wire and decodes them, standing
// in for the socket a real interface would otherwise need.
func TestHelloRoundTripsOverLoopback(t *testing.T) {
	fabric := transport.NewLoopbackFabric()
	r1 := fabric.Join("10.0.1.1")
	r2 := fabric.Join("10.0.1.2")
	defer r1.Close()
	defer r2.Close()

	hello := &Hello{
		NetworkMask:        0xffffff00,
		HelloInterval:      10,
		Options:            0x02,
		RtrPriority:        1,
		RouterDeadInterval: 40,
		DesignatedRouter:   0x0a000101,
		Neighbors:          []uint32{0x0a000102},
	}
	body := EncodeHello(hello)
	h := Header{
		Version:  ospfVersion2,
		Type:     TypeHello,
		Length:   uint16(headerLen + len(body)),
		RouterID: 0x0a000101,
		AreaID:   0,
		AuType:   AuthNone,
	}
	w := wire.NewWriter(int(h.Length))
	w.Uint8(h.Version)
	w.Uint8(uint8(h.Type))
	w.Uint16(h.Length)
	w.Uint32(h.RouterID)
	w.Uint32(h.AreaID)
	w.Uint16(h.Checksum)
	w.Uint16(uint16(h.AuType))
	w.Raw(h.AuthData[:])
	w.Raw(body)
	pdu := w.Bytes()

	require.NoError(t, r1.WriteTo(pdu, transport.Broadcast()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	received, src, err := r2.ReadFrom(ctx)
	require.NoError(t, err)
	require.Equal(t, "10.0.1.1", src.String())

	r := wire.NewReader(received)
	decodedHeader, err := DecodeHeader(r)
	require.NoError(t, err)
	require.Equal(t, h.RouterID, decodedHeader.RouterID)

	decodedHello, err := DecodeHello(r)
	require.NoError(t, err)
	require.Equal(t, hello, decodedHello)
}
