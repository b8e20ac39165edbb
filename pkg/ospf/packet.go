package ospf

import (
	"errors"
	"fmt"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/routeflow/ribd/pkg/auth"
)

// PacketType is the OSPFv2 packet type field (RFC 2328 §A.3.1).
type PacketType uint8

const (
	TypeHello       PacketType = 1
	TypeDBDesc      PacketType = 2
	TypeLSRequest   PacketType = 3
	TypeLSUpdate    PacketType = 4
	TypeLSAck       PacketType = 5
)

const (
	ospfVersion2 = 2
	headerLen    = 24
	authDataLen  = 8
)

// AuthType selects which authentication scheme the header's AuType field
// names (RFC 2328 §D / RFC 5709 for the HMAC extension).
type AuthType uint16

const (
	AuthNone     AuthType = 0
	AuthCleartext AuthType = 1
	AuthCrypto   AuthType = 2 // HMAC family, trailer appended after the packet
)

// Header is the fixed 24-byte OSPFv2 packet header.
type Header struct {
	Version  uint8
	Type     PacketType
	Length   uint16
	RouterID uint32
	AreaID   uint32
	Checksum uint16
	AuType   AuthType
	AuthData [authDataLen]byte // cleartext key, or key-id+seqno for crypto
}

// DecodeError categorizes a structural decode failure per §7's Decode error
// kind.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return "ospf: decode: " + e.Reason }

func decodeErr(format string, args ...any) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

// DecodeHeader parses the fixed header and leaves r positioned at the
// start of the type-specific body.
func DecodeHeader(r *wire.Reader) (Header, error) {
	var h Header
	h.Version = r.Uint8()
	h.Type = PacketType(r.Uint8())
	h.Length = r.Uint16()
	h.RouterID = r.Uint32()
	h.AreaID = r.Uint32()
	h.Checksum = r.Uint16()
	h.AuType = AuthType(r.Uint16())
	copy(h.AuthData[:], r.Bytes(authDataLen))
	if r.Err() != nil {
		return h, decodeErr("truncated header: %v", r.Err())
	}
	if h.Version != ospfVersion2 {
		return h, decodeErr("unsupported version %d", h.Version)
	}
	if int(h.Length) < headerLen {
		return h, decodeErr("length %d shorter than header", h.Length)
	}
	return h, nil
}

// CryptoAuthData is the structured view of Header.AuthData when AuType is
// AuthCrypto: reserved, key-id, digest length, and the sequence number used
// for replay protection.
type CryptoAuthData struct {
	KeyID      uint8
	DigestLen  uint8
	SeqNo      uint32
}

// ParseCryptoAuthData reads the crypto-auth layout out of AuthData (RFC
// 2328 §D.3): 2 reserved bytes, key-id, digest length, then a 32-bit
// sequence number.
func (h *Header) ParseCryptoAuthData() CryptoAuthData {
	return CryptoAuthData{
		KeyID:     h.AuthData[2],
		DigestLen: h.AuthData[3],
		SeqNo:     uint32(h.AuthData[4])<<24 | uint32(h.AuthData[5])<<16 | uint32(h.AuthData[6])<<8 | uint32(h.AuthData[7]),
	}
}

// PutCryptoAuthData writes the crypto-auth layout into AuthData.
func (h *Header) PutCryptoAuthData(c CryptoAuthData) {
	h.AuthData[0], h.AuthData[1] = 0, 0
	h.AuthData[2] = c.KeyID
	h.AuthData[3] = c.DigestLen
	h.AuthData[4] = byte(c.SeqNo >> 24)
	h.AuthData[5] = byte(c.SeqNo >> 16)
	h.AuthData[6] = byte(c.SeqNo >> 8)
	h.AuthData[7] = byte(c.SeqNo)
}

// Authenticate validates buf (the full packet as received off the wire,
// including the appended HMAC trailer if any) against a keychain snapshot,
// per §4.1: for AuthCleartext, the 64-bit key occupies the header's
// authentication field directly; for AuthCrypto, the trailer is appended
// after the declared packet length (h.Length is NOT inclusive of it) and
// the digest is computed over everything up to that point with the key
// selected by the key-id embedded in AuthData.
func Authenticate(h *Header, buf []byte, kc *auth.Keychain, sendKeyNow *auth.Key) error {
	switch h.AuType {
	case AuthNone:
		return nil
	case AuthCleartext:
		if sendKeyNow == nil {
			return auth.ErrNoAcceptedKey
		}
		return auth.VerifyCleartext(sendKeyNow.Secret, h.AuthData[:])
	case AuthCrypto:
		c := h.ParseCryptoAuthData()
		key := kc.ByID(uint32(c.KeyID))
		if key == nil {
			return auth.ErrKeyNotFound
		}
		digestOffset := int(h.Length)
		if digestOffset+int(c.DigestLen) > len(buf) {
			return decodeErr("truncated auth trailer")
		}
		digest := buf[digestOffset : digestOffset+int(c.DigestLen)]
		computed := auth.ComputeHMAC(key.Algorithm, key.Secret, buf[:digestOffset], len(buf[:digestOffset]))
		if len(computed) != len(digest) {
			return auth.ErrDigestMismatch
		}
		for i := range computed {
			if computed[i] != digest[i] {
				return auth.ErrDigestMismatch
			}
		}
		return nil
	default:
		return decodeErr("unknown auth type %d", h.AuType)
	}
}

// Hello is the OSPFv2 Hello packet body (RFC 2328 §A.3.2).
type Hello struct {
	NetworkMask     uint32
	HelloInterval   uint16
	Options         uint8
	RtrPriority     uint8
	RouterDeadInterval uint32
	DesignatedRouter   uint32
	BackupDesignatedRouter uint32
	Neighbors       []uint32
}

func EncodeHello(h *Hello) []byte {
	w := wire.NewWriter(20 + 4*len(h.Neighbors))
	w.Uint32(h.NetworkMask)
	w.Uint16(h.HelloInterval)
	w.Uint8(h.Options)
	w.Uint8(h.RtrPriority)
	w.Uint32(h.RouterDeadInterval)
	w.Uint32(h.DesignatedRouter)
	w.Uint32(h.BackupDesignatedRouter)
	for _, n := range h.Neighbors {
		w.Uint32(n)
	}
	return w.Bytes()
}

func DecodeHello(r *wire.Reader) (*Hello, error) {
	h := &Hello{}
	h.NetworkMask = r.Uint32()
	h.HelloInterval = r.Uint16()
	h.Options = r.Uint8()
	h.RtrPriority = r.Uint8()
	h.RouterDeadInterval = r.Uint32()
	h.DesignatedRouter = r.Uint32()
	h.BackupDesignatedRouter = r.Uint32()
	for r.Remaining() >= 4 {
		h.Neighbors = append(h.Neighbors, r.Uint32())
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated hello: %v", r.Err())
	}
	return h, nil
}

// DBDescFlags are the I/M/MS bits of the DD exchange (RFC 2328 §A.3.3).
type DBDescFlags uint8

const (
	DDFlagMS DBDescFlags = 1 << 0 // Master/Slave
	DDFlagM  DBDescFlags = 1 << 1 // More
	DDFlagI  DBDescFlags = 1 << 2 // Init
)

// DBDesc is the Database Description packet body.
type DBDesc struct {
	MTU     uint16
	Options uint8
	Flags   DBDescFlags
	SeqNo   uint32
	LSAHeaders []DDSummary
}

func EncodeDBDesc(d *DBDesc) []byte {
	w := wire.NewWriter(8 + 20*len(d.LSAHeaders))
	w.Uint16(d.MTU)
	w.Uint8(d.Options)
	w.Uint8(uint8(d.Flags))
	w.Uint32(d.SeqNo)
	for _, s := range d.LSAHeaders {
		encodeLSAHeaderSummary(w, s)
	}
	return w.Bytes()
}

func DecodeDBDesc(r *wire.Reader) (*DBDesc, error) {
	d := &DBDesc{}
	d.MTU = r.Uint16()
	d.Options = r.Uint8()
	d.Flags = DBDescFlags(r.Uint8())
	d.SeqNo = r.Uint32()
	for r.Remaining() >= 20 {
		d.LSAHeaders = append(d.LSAHeaders, decodeLSAHeaderSummary(r))
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated dbdesc: %v", r.Err())
	}
	return d, nil
}

func encodeLSAHeaderSummary(w *wire.Writer, s DDSummary) {
	w.Uint16(s.Age)
	w.Uint8(0) // options, not modeled separately here; carried in LSType byte context by callers
	w.Uint8(s.LSType)
	w.Uint32(s.LSID)
	w.Uint32(s.AdvRouter)
	w.Uint32(s.SeqNo)
	w.Uint16(s.Checksum)
	w.Uint16(0) // length, filled by caller if needed
}

func decodeLSAHeaderSummary(r *wire.Reader) DDSummary {
	var s DDSummary
	s.Age = r.Uint16()
	r.Uint8() // options
	s.LSType = r.Uint8()
	s.LSID = r.Uint32()
	s.AdvRouter = r.Uint32()
	s.SeqNo = r.Uint32()
	s.Checksum = r.Uint16()
	r.Uint16() // length
	return s
}

// LSRequestEntry is one entry of a Link State Request packet (RFC 2328 §A.3.4).
type LSRequestEntry struct {
	LSType    uint32
	LSID      uint32
	AdvRouter uint32
}

func EncodeLSRequest(entries []LSRequestEntry) []byte {
	w := wire.NewWriter(12 * len(entries))
	for _, e := range entries {
		w.Uint32(e.LSType)
		w.Uint32(e.LSID)
		w.Uint32(e.AdvRouter)
	}
	return w.Bytes()
}

func DecodeLSRequest(r *wire.Reader) ([]LSRequestEntry, error) {
	var out []LSRequestEntry
	for r.Remaining() >= 12 {
		out = append(out, LSRequestEntry{LSType: r.Uint32(), LSID: r.Uint32(), AdvRouter: r.Uint32()})
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated ls request: %v", r.Err())
	}
	return out, nil
}

// LSUpdate carries a batch of raw, bit-exact encoded LSAs (RFC 2328
// §A.3.5); the LSDB's stored Raw buffers are what gets placed here.
type LSUpdate struct {
	LSAs [][]byte
}

func EncodeLSUpdate(u *LSUpdate) []byte {
	total := 4
	for _, l := range u.LSAs {
		total += len(l)
	}
	w := wire.NewWriter(total)
	w.Uint32(uint32(len(u.LSAs)))
	for _, l := range u.LSAs {
		w.Raw(l)
	}
	return w.Bytes()
}

func DecodeLSUpdate(r *wire.Reader, lsaLength func(buf []byte) (int, error)) (*LSUpdate, error) {
	u := &LSUpdate{}
	count := r.Uint32()
	if r.Err() != nil {
		return nil, decodeErr("truncated ls update count")
	}
	for i := uint32(0); i < count; i++ {
		remaining := r.Remaining()
		if remaining < 20 {
			return nil, decodeErr("truncated lsa %d", i)
		}
		// Peek the 20-byte header to learn this LSA's total length.
		peekBuf := r.Bytes(20)
		if r.Err() != nil {
			return nil, decodeErr("truncated lsa header %d", i)
		}
		length, err := lsaLength(peekBuf)
		if err != nil {
			return nil, err
		}
		body := r.Bytes(length - 20)
		if r.Err() != nil {
			return nil, decodeErr("truncated lsa body %d", i)
		}
		full := append(append([]byte(nil), peekBuf...), body...)
		u.LSAs = append(u.LSAs, full)
	}
	return u, nil
}

// LSAck carries the headers of acknowledged LSAs (RFC 2328 §A.3.6).
type LSAck struct {
	Headers []DDSummary
}

func EncodeLSAck(a *LSAck) []byte {
	w := wire.NewWriter(20 * len(a.Headers))
	for _, h := range a.Headers {
		encodeLSAHeaderSummary(w, h)
	}
	return w.Bytes()
}

func DecodeLSAck(r *wire.Reader) (*LSAck, error) {
	a := &LSAck{}
	for r.Remaining() >= 20 {
		a.Headers = append(a.Headers, decodeLSAHeaderSummary(r))
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated ls ack: %v", r.Err())
	}
	return a, nil
}

var ErrUnknownPacketType = errors.New("ospf: unknown packet type")
