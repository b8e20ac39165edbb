package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderWriterRoundTrip(t *testing.T) {
	w := NewWriter(32)
	w.Uint8(0x01)
	w.Uint16(0x0203)
	w.Uint32(0x04050607)
	w.Uint64(0x08090a0b0c0d0e0f)
	w.IPv4([4]byte{10, 0, 0, 1})
	w.Raw([]byte{0xff, 0xfe})

	r := NewReader(w.Bytes())
	require.Equal(t, uint8(0x01), r.Uint8())
	require.Equal(t, uint16(0x0203), r.Uint16())
	require.Equal(t, uint32(0x04050607), r.Uint32())
	require.Equal(t, uint64(0x08090a0b0c0d0e0f), r.Uint64())
	require.Equal(t, [4]byte{10, 0, 0, 1}, r.IPv4())
	require.Equal(t, []byte{0xff, 0xfe}, r.Bytes(2))
	require.NoError(t, r.Err())
	require.Equal(t, 0, r.Remaining())
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{0x01})
	r.Uint32()
	require.Error(t, r.Err())
}

func TestPutUint16At(t *testing.T) {
	w := NewWriter(4)
	w.Uint16(0)
	w.Uint16(0xbeef)
	w.PutUint16At(0, 0x1234)
	require.Equal(t, []byte{0x12, 0x34, 0xbe, 0xef}, w.Bytes())
}

func TestFletcher16RoundTrip(t *testing.T) {
	body := make([]byte, 20)
	for i := range body {
		body[i] = byte(i * 3)
	}
	// Reserve two checksum bytes at offset 4, zeroed before computing.
	body[4], body[5] = 0, 0
	c0, c1 := Fletcher16(body, 4)
	body[4], body[5] = c0, c1

	require.True(t, VerifyFletcher16(body, 4))

	body[10] ^= 0x01
	require.False(t, VerifyFletcher16(body, 4))
}
