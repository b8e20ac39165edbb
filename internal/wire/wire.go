// Package wire provides binary encoding and decoding helpers shared by the
// OSPF, IS-IS, and BGP wire-format codecs. All three protocols use
// fixed-width, network-byte-order (big-endian) fields and TLV-encoded
// variable data rather than a generic RPC marshaling format, so encoding is
// done directly against byte slices with encoding/binary, matching the
// style used elsewhere in this codebase's own wire-format packages.
package wire

import (
	"encoding/binary"
	"fmt"
)

// Reader sequentially consumes fields from a byte slice in network byte
// order, tracking position and the first error encountered so callers can
// chain reads without checking an error after every field.
type Reader struct {
	buf []byte
	pos int
	err error
}

// NewReader returns a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Err returns the first error encountered during reading, if any.
func (r *Reader) Err() error {
	return r.err
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

func (r *Reader) require(n int) bool {
	if r.err != nil {
		return false
	}
	if r.pos+n > len(r.buf) {
		r.err = fmt.Errorf("wire: short read: need %d bytes, have %d", n, len(r.buf)-r.pos)
		return false
	}
	return true
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() uint8 {
	if !r.require(1) {
		return 0
	}
	v := r.buf[r.pos]
	r.pos++
	return v
}

// Uint16 reads a big-endian uint16.
func (r *Reader) Uint16() uint16 {
	if !r.require(2) {
		return 0
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v
}

// Uint32 reads a big-endian uint32.
func (r *Reader) Uint32() uint32 {
	if !r.require(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v
}

// Uint64 reads a big-endian uint64.
func (r *Reader) Uint64() uint64 {
	if !r.require(8) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) []byte {
	if !r.require(n) {
		return nil
	}
	v := r.buf[r.pos : r.pos+n]
	r.pos += n
	return v
}

// IPv4 reads a 4-byte IPv4 address.
func (r *Reader) IPv4() [4]byte {
	var addr [4]byte
	copy(addr[:], r.Bytes(4))
	return addr
}

// Skip advances the cursor by n bytes without returning them.
func (r *Reader) Skip(n int) {
	r.require(n)
	if r.err == nil {
		r.pos += n
	}
}

// Writer accumulates fields in network byte order into a growable buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer, optionally pre-sized via capacity hint.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

// Uint16 appends a big-endian uint16.
func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Uint32 appends a big-endian uint32.
func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Uint64 appends a big-endian uint64.
func (w *Writer) Uint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// Raw appends raw bytes verbatim.
func (w *Writer) Raw(b []byte) {
	w.buf = append(w.buf, b...)
}

// IPv4 appends a 4-byte IPv4 address.
func (w *Writer) IPv4(addr [4]byte) {
	w.buf = append(w.buf, addr[:]...)
}

// PutUint16At overwrites a previously written uint16 at a fixed offset,
// used for backpatching a length or checksum field after the rest of the
// message body has been written.
func (w *Writer) PutUint16At(offset int, v uint16) {
	binary.BigEndian.PutUint16(w.buf[offset:offset+2], v)
}

// Fletcher16 computes the ISO 8473 / RFC 905 Fletcher checksum over buf,
// treating the two bytes at [checkOffset, checkOffset+2) as the checksum
// field itself (must be zero on entry). Both OSPF LSA checksums and IS-IS
// LSP checksums are this same algorithm; OSPFv2's extra age-field exclusion
// is handled by the caller zeroing/excluding those bytes before calling in,
// per §4.1 ("checksum is the Fletcher-16 over the body skipping the
// age/remaining-lifetime field").
func Fletcher16(buf []byte, checkOffset int) (c0, c1 byte) {
	var a, b int
	mod := 255
	for i, v := range buf {
		x := int(v)
		if i == checkOffset || i == checkOffset+1 {
			x = 0
		}
		a = (a + x) % mod
		b = (b + a) % mod
	}
	length := len(buf) - checkOffset - 1
	x := (length*a - b) % mod
	if x <= 0 {
		x += mod
	}
	y := (mod - a - x) % mod
	if y <= 0 {
		y += mod
	}
	return byte(x), byte(y)
}

// VerifyFletcher16 recomputes the Fletcher checksum over buf (whose
// checksum field at checkOffset already holds the value to validate) and
// reports whether it is consistent, i.e. recomputing over the full buffer
// including the stored checksum bytes yields zero.
func VerifyFletcher16(buf []byte, checkOffset int) bool {
	var a, b int
	mod := 255
	for _, v := range buf {
		a = (a + int(v)) % mod
		b = (b + a) % mod
	}
	return a == 0 && b == 0
}
