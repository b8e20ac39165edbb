package ospf

import (
	"time"

	"github.com/routeflow/ribd/internal/wire"
	"github.com/routeflow/ribd/pkg/lsdb"
)

// LSA type codes (RFC 2328 §A.4.1; an RFC 3623 Grace-LSA is a link-local
// opaque LSA, type 9).
const (
	LSARouter            uint8 = 1
	LSANetwork           uint8 = 2
	LSASummaryNetwork    uint8 = 3
	LSASummaryASBR       uint8 = 4
	LSAASExternal        uint8 = 5
	LSAOpaqueLink        uint8 = 9  // RFC 5250, link-local scope (carries Grace-LSA)
	LSAOpaqueArea        uint8 = 10 // area scope (carries SR opaque)
	LSAOpaqueAS          uint8 = 11
)

const lsaHeaderLen = 20

// LSAHeader is the common 20-byte LSA header (RFC 2328 §A.4.1).
type LSAHeader struct {
	Age       uint16
	Options   uint8
	Type      uint8
	LSID      uint32
	AdvRouter uint32
	SeqNo     uint32
	Checksum  uint16
	Length    uint16
}

func EncodeLSAHeader(w *wire.Writer, h LSAHeader) {
	w.Uint16(h.Age)
	w.Uint8(h.Options)
	w.Uint8(h.Type)
	w.Uint32(h.LSID)
	w.Uint32(h.AdvRouter)
	w.Uint32(h.SeqNo)
	w.Uint16(h.Checksum)
	w.Uint16(h.Length)
}

func DecodeLSAHeader(r *wire.Reader) LSAHeader {
	var h LSAHeader
	h.Age = r.Uint16()
	h.Options = r.Uint8()
	h.Type = r.Uint8()
	h.LSID = r.Uint32()
	h.AdvRouter = r.Uint32()
	h.SeqNo = r.Uint32()
	h.Checksum = r.Uint16()
	h.Length = r.Uint16()
	return h
}

// LengthFromHeaderBytes reads just the Length field (offset 18) out of a
// raw 20-byte LSA header buffer, used by DecodeLSUpdate to know how many
// more bytes to consume per LSA without fully decoding it.
func LengthFromHeaderBytes(buf []byte) (int, error) {
	if len(buf) < lsaHeaderLen {
		return 0, decodeErr("lsa header too short")
	}
	length := int(buf[18])<<8 | int(buf[19])
	if length < lsaHeaderLen {
		return 0, decodeErr("lsa length %d shorter than header", length)
	}
	return length, nil
}

// ComputeLSAChecksum computes the RFC 2328 §12.1.4 checksum: Fletcher-16
// over the LSA body starting after the Age field (bytes 2..Length), with
// the Checksum field (at offset 16, i.e. byte 14 relative to this slice)
// counted as zero, per RFC 905's adjustment for a checksum that itself
// excludes a leading mutable field (age). fullEncoded is the full encoded
// LSA (header+data); the Age field is skipped here and the Checksum bytes
// are treated as zero whatever they hold.
func ComputeLSAChecksum(fullEncoded []byte) (uint16, error) {
	if len(fullEncoded) < lsaHeaderLen {
		return 0, decodeErr("lsa too short for checksum")
	}
	// Checksum field lives at absolute offset 16-17; relative to the
	// age-excluded slice (which starts at offset 2) that's offset 14.
	region := fullEncoded[2:]
	c0, c1 := wire.Fletcher16(region, 14)
	return uint16(c0)<<8 | uint16(c1), nil
}

// VerifyLSAChecksum recomputes and compares the checksum embedded in
// fullEncoded (whose Age field is excluded from the computation per RFC
// 2328 §12.1.4).
func VerifyLSAChecksum(fullEncoded []byte) bool {
	if len(fullEncoded) < lsaHeaderLen {
		return false
	}
	return wire.VerifyFletcher16(fullEncoded[2:], 14)
}

// RouterLSALink is one link entry in a Router-LSA (RFC 2328 §A.4.2).
type RouterLSALink struct {
	LinkID   uint32
	LinkData uint32
	Type     uint8
	NumTOS   uint8
	Metric   uint16
}

// RouterLSABody is the Router-LSA's type-specific body.
type RouterLSABody struct {
	VirtualLinkEndpoint bool
	ASBoundaryRouter    bool
	AreaBorderRouter    bool
	Links               []RouterLSALink
}

func EncodeRouterLSABody(b *RouterLSABody) []byte {
	w := wire.NewWriter(4 + 16*len(b.Links))
	var flags uint8
	if b.VirtualLinkEndpoint {
		flags |= 0x04
	}
	if b.ASBoundaryRouter {
		flags |= 0x02
	}
	if b.AreaBorderRouter {
		flags |= 0x01
	}
	w.Uint8(flags)
	w.Uint8(0)
	w.Uint16(uint16(len(b.Links)))
	for _, l := range b.Links {
		w.Uint32(l.LinkID)
		w.Uint32(l.LinkData)
		w.Uint8(l.Type)
		w.Uint8(l.NumTOS)
		w.Uint16(l.Metric)
	}
	return w.Bytes()
}

func DecodeRouterLSABody(r *wire.Reader) (*RouterLSABody, error) {
	b := &RouterLSABody{}
	flags := r.Uint8()
	b.VirtualLinkEndpoint = flags&0x04 != 0
	b.ASBoundaryRouter = flags&0x02 != 0
	b.AreaBorderRouter = flags&0x01 != 0
	r.Uint8()
	count := r.Uint16()
	for i := uint16(0); i < count; i++ {
		var l RouterLSALink
		l.LinkID = r.Uint32()
		l.LinkData = r.Uint32()
		l.Type = r.Uint8()
		l.NumTOS = r.Uint8()
		l.Metric = r.Uint16()
		b.Links = append(b.Links, l)
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated router-lsa body: %v", r.Err())
	}
	return b, nil
}

// NetworkLSABody is the Network-LSA's type-specific body (RFC 2328
// §A.4.3): the DR's subnet mask and the router-ids of every attached
// router, keyed by the DR's interface address as LSID per §3's
// self-identification rule for Network-LSAs.
type NetworkLSABody struct {
	NetworkMask    uint32
	AttachedRouter []uint32
}

func EncodeNetworkLSABody(b *NetworkLSABody) []byte {
	w := wire.NewWriter(4 + 4*len(b.AttachedRouter))
	w.Uint32(b.NetworkMask)
	for _, r := range b.AttachedRouter {
		w.Uint32(r)
	}
	return w.Bytes()
}

func DecodeNetworkLSABody(r *wire.Reader) (*NetworkLSABody, error) {
	b := &NetworkLSABody{}
	b.NetworkMask = r.Uint32()
	for r.Remaining() >= 4 {
		b.AttachedRouter = append(b.AttachedRouter, r.Uint32())
	}
	if r.Err() != nil {
		return nil, decodeErr("truncated network-lsa body: %v", r.Err())
	}
	return b, nil
}

// EncodeLSA assembles a full LSA (header + body) with the checksum
// back-patched, matching the "length fields are back-patched after the
// body is emitted" rule in §4.1.
func EncodeLSA(h LSAHeader, body []byte) []byte {
	h.Length = uint16(lsaHeaderLen + len(body))
	w := wire.NewWriter(int(h.Length))
	h.Checksum = 0
	EncodeLSAHeader(w, h)
	w.Raw(body)
	buf := w.Bytes()
	checksum, _ := ComputeLSAChecksum(buf)
	buf[16] = byte(checksum >> 8)
	buf[17] = byte(checksum)
	return buf
}

// ToKey projects an OSPF LSA header into the shared lsdb.Key. The key always
// carries the advertising router, for every LSA type; link-local opaque
// (type 9) LSAs are not keyed by interface address and are told apart only
// by the scope value the caller passes.
func (h LSAHeader) ToKey(scope uint8) lsdb.Key {
	var k lsdb.Key
	k.Scope = scope
	k.Type = uint16(h.Type)
	putUint32(&k.AdvRouter, h.AdvRouter)
	putUint32(&k.ID, h.LSID)
	return k
}

func putUint32(dst *[8]byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

// ToLSDBEntry wraps a fully encoded LSA buffer into an lsdb.LSA, capturing
// baseTime (the time of origination or receipt) as the point CurrentAge is
// computed from thereafter.
func (h LSAHeader) ToLSDBEntry(scope uint8, raw []byte, maxAge uint16, baseTime time.Time) *lsdb.LSA {
	// lsdb.LSA.Lifetime is the remaining lifetime, so the LS age is
	// converted to MaxAge minus age.
	var lifetime uint16
	if h.Age < maxAge {
		lifetime = maxAge - h.Age
	}
	return &lsdb.LSA{
		Key:      h.ToKey(scope),
		SeqNo:    h.SeqNo,
		Checksum: h.Checksum,
		Lifetime: lifetime,
		MaxAge:   maxAge,
		BaseTime: baseTime,
		Raw:      raw,
	}
}
