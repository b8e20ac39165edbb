package ospf

import (
	"testing"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{
		Version:  ospfVersion2,
		Type:     TypeHello,
		Length:   headerLen,
		RouterID: 0x01010101,
		AreaID:   0x00000000,
		AuType:   AuthNone,
	}
	w := wire.NewWriter(headerLen)
	w.Uint8(h.Version)
	w.Uint8(uint8(h.Type))
	w.Uint16(h.Length)
	w.Uint32(h.RouterID)
	w.Uint32(h.AreaID)
	w.Uint16(h.Checksum)
	w.Uint16(uint16(h.AuType))
	w.Raw(h.AuthData[:])

	decoded, err := DecodeHeader(wire.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, h, decoded)
}

func TestDecodeHeaderRejectsWrongVersion(t *testing.T) {
	w := wire.NewWriter(headerLen)
	w.Uint8(3) // bad version
	w.Uint8(uint8(TypeHello))
	w.Uint16(headerLen)
	w.Uint32(0)
	w.Uint32(0)
	w.Uint16(0)
	w.Uint16(0)
	w.Raw(make([]byte, authDataLen))

	_, err := DecodeHeader(wire.NewReader(w.Bytes()))
	require.Error(t, err)
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
}

func TestDecodeHeaderRejectsTruncatedLength(t *testing.T) {
	w := wire.NewWriter(headerLen)
	w.Uint8(ospfVersion2)
	w.Uint8(uint8(TypeHello))
	w.Uint16(headerLen - 1) // shorter than the fixed header itself
	w.Uint32(0)
	w.Uint32(0)
	w.Uint16(0)
	w.Uint16(0)
	w.Raw(make([]byte, authDataLen))

	_, err := DecodeHeader(wire.NewReader(w.Bytes()))
	require.Error(t, err)
}

func TestCryptoAuthDataRoundTrip(t *testing.T) {
	var h Header
	c := CryptoAuthData{KeyID: 7, DigestLen: 16, SeqNo: 0xdeadbeef}
	h.PutCryptoAuthData(c)
	require.Equal(t, c, h.ParseCryptoAuthData())
}

func TestHelloRoundTrip(t *testing.T) {
	h := &Hello{
		NetworkMask:        0xffffff00,
		HelloInterval:      10,
		Options:            0x02,
		RtrPriority:        1,
		RouterDeadInterval: 40,
		DesignatedRouter:   0x0a000001,
		Neighbors:          []uint32{0x01010101, 0x02020202},
	}
	encoded := EncodeHello(h)
	decoded, err := DecodeHello(wire.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, h, decoded)
}

func TestDBDescRoundTrip(t *testing.T) {
	d := &DBDesc{
		MTU:     1500,
		Options: 0x02,
		Flags:   DDFlagI | DDFlagM | DDFlagMS,
		SeqNo:   12345,
		LSAHeaders: []DDSummary{
			{Age: 100, LSType: uint8(LSARouter), LSID: 0x01010101, AdvRouter: 0x01010101, SeqNo: 0x80000001, Checksum: 0xabcd},
		},
	}
	encoded := EncodeDBDesc(d)
	decoded, err := DecodeDBDesc(wire.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, d.SeqNo, decoded.SeqNo)
	require.Equal(t, d.Flags, decoded.Flags)
	require.Len(t, decoded.LSAHeaders, 1)
	require.Equal(t, d.LSAHeaders[0], decoded.LSAHeaders[0])
}

func TestLSRequestRoundTrip(t *testing.T) {
	entries := []LSRequestEntry{
		{LSType: 1, LSID: 0x01010101, AdvRouter: 0x01010101},
		{LSType: 2, LSID: 0x0a000001, AdvRouter: 0x02020202},
	}
	encoded := EncodeLSRequest(entries)
	decoded, err := DecodeLSRequest(wire.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, entries, decoded)
}

func TestLSAckRoundTrip(t *testing.T) {
	a := &LSAck{Headers: []DDSummary{
		{Age: 50, LSType: uint8(LSARouter), LSID: 0x01010101, AdvRouter: 0x01010101, SeqNo: 0x80000002, Checksum: 0x1234},
	}}
	encoded := EncodeLSAck(a)
	decoded, err := DecodeLSAck(wire.NewReader(encoded))
	require.NoError(t, err)
	require.Equal(t, a.Headers, decoded.Headers)
}

func TestLSUpdateRoundTrip(t *testing.T) {
	body := EncodeRouterLSABody(&RouterLSABody{
		Links: []RouterLSALink{{LinkID: 1, LinkData: 2, Type: 1, Metric: 5}},
	})
	h := LSAHeader{Age: 0, Type: LSARouter, LSID: 0x01010101, AdvRouter: 0x01010101, SeqNo: 0x80000001}
	raw := EncodeLSA(h, body)

	u := &LSUpdate{LSAs: [][]byte{raw}}
	encoded := EncodeLSUpdate(u)

	decoded, err := DecodeLSUpdate(wire.NewReader(encoded), LengthFromHeaderBytes)
	require.NoError(t, err)
	require.Len(t, decoded.LSAs, 1)
	require.Equal(t, raw, decoded.LSAs[0])
}
