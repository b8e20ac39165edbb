package bgp

import (
	"encoding/binary"

	"github.com/routeflow/ribd/internal/wire"
)

// AttrType is a BGP path attribute type code (RFC 4271 §5, RFC 6793, RFC
// 8092).
type AttrType uint8

const (
	AttrOrigin          AttrType = 1
	AttrASPath          AttrType = 2
	AttrNextHop         AttrType = 3
	AttrMultiExitDisc   AttrType = 4
	AttrLocalPref       AttrType = 5
	AttrAtomicAggregate AttrType = 6
	AttrAggregator      AttrType = 7
	AttrCommunities     AttrType = 8  // RFC 1997
	AttrAS4Path         AttrType = 17 // RFC 6793
	AttrAS4Aggregator   AttrType = 18
	AttrLargeCommunities AttrType = 32 // RFC 8092
)

// Attribute flags (RFC 4271 §4.3).
const (
	FlagOptional   uint8 = 1 << 7
	FlagTransitive uint8 = 1 << 6
	FlagPartial    uint8 = 1 << 5
	FlagExtendedLen uint8 = 1 << 4
)

// wellKnownMandatory are the attribute types RFC 4271 requires every
// UPDATE with NLRI to carry; missing one of these is a session-resetting
// error, not a treat-as-withdraw.
var wellKnownMandatory = map[AttrType]bool{
	AttrOrigin:  true,
	AttrASPath:  true,
	AttrNextHop: true,
}

// PathAttribute is a decoded (or to-be-encoded) BGP path attribute. Value
// is the type-specific payload in its raw encoded form; typed accessors
// below decode it on demand so attributes this package doesn't specially
// understand still round-trip bit-exactly (RFC 7606's general
// "unrecognized attribute: pass through unless it's well-known mandatory"
// tolerance).
type PathAttribute struct {
	Flags uint8
	Type  AttrType
	Value []byte
}

func EncodePathAttribute(w *wire.Writer, a PathAttribute) {
	w.Uint8(a.Flags)
	w.Uint8(uint8(a.Type))
	if a.Flags&FlagExtendedLen != 0 {
		w.Uint16(uint16(len(a.Value)))
	} else {
		w.Uint8(uint8(len(a.Value)))
	}
	w.Raw(a.Value)
}

func DecodePathAttribute(r *wire.Reader) (PathAttribute, error) {
	var a PathAttribute
	flags := r.Uint8()
	a.Flags = flags
	a.Type = AttrType(r.Uint8())
	var length int
	if flags&FlagExtendedLen != 0 {
		length = int(r.Uint16())
	} else {
		length = int(r.Uint8())
	}
	a.Value = r.Bytes(length)
	if r.Err() != nil {
		kind := ErrTreatAsWithdraw
		if wellKnownMandatory[a.Type] {
			kind = ErrReset
		}
		return a, decodeErr(kind, "truncated path attribute type %d", a.Type)
	}
	return a, nil
}

// DecodePathAttributes decodes the whole path-attribute section, applying
// RFC 7606's rule: a malformed optional-transitive attribute is treated as
// withdraw for the whole UPDATE (by returning an ErrTreatAsWithdraw-kind
// error) rather than resetting the session, unless the malformed attribute
// is well-known mandatory (Origin/AS_PATH/NEXT_HOP), in which case it is
// a session error.
func DecodePathAttributes(body []byte) ([]PathAttribute, error) {
	r := wire.NewReader(body)
	var out []PathAttribute
	for r.Remaining() > 0 {
		a, err := DecodePathAttribute(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// FindAttribute returns the first attribute of type t, or nil.
func FindAttribute(attrs []PathAttribute, t AttrType) *PathAttribute {
	for i := range attrs {
		if attrs[i].Type == t {
			return &attrs[i]
		}
	}
	return nil
}

// ASPathSegment is one AS_PATH segment (RFC 4271 §4.3): AS_SEQUENCE (type
// 2) or AS_SET (type 1), carrying four-octet ASNs per RFC 6793 once
// CapAS4 is negotiated with the peer.
type ASPathSegment struct {
	Type uint8
	ASNs []uint32
}

const (
	SegTypeASSet      uint8 = 1
	SegTypeASSequence uint8 = 2
)

func EncodeASPath(segs []ASPathSegment, fourOctet bool) []byte {
	w := wire.NewWriter(8)
	for _, s := range segs {
		w.Uint8(s.Type)
		w.Uint8(uint8(len(s.ASNs)))
		for _, asn := range s.ASNs {
			if fourOctet {
				w.Uint32(asn)
			} else {
				w.Uint16(uint16(asn))
			}
		}
	}
	return w.Bytes()
}

func DecodeASPath(value []byte, fourOctet bool) ([]ASPathSegment, error) {
	r := wire.NewReader(value)
	var out []ASPathSegment
	for r.Remaining() > 0 {
		var s ASPathSegment
		s.Type = r.Uint8()
		n := int(r.Uint8())
		for i := 0; i < n; i++ {
			if fourOctet {
				s.ASNs = append(s.ASNs, r.Uint32())
			} else {
				s.ASNs = append(s.ASNs, uint32(r.Uint16()))
			}
		}
		if r.Err() != nil {
			return nil, decodeErr(ErrReset, "truncated as_path segment")
		}
		out = append(out, s)
	}
	return out, nil
}

// ContainsAS reports whether asn appears anywhere in the AS_PATH, the
// check the distribute filter's loop-detection rule uses.
func ContainsAS(segs []ASPathSegment, asn uint32) bool {
	for _, s := range segs {
		for _, a := range s.ASNs {
			if a == asn {
				return true
			}
		}
	}
	return false
}

// PrependAS returns a copy of segs with asn prepended to the leading
// AS_SEQUENCE (creating one if segs is empty or starts with an AS_SET),
// the standard outbound-update AS_PATH update.
func PrependAS(segs []ASPathSegment, asn uint32) []ASPathSegment {
	if len(segs) == 0 || segs[0].Type != SegTypeASSequence {
		head := ASPathSegment{Type: SegTypeASSequence, ASNs: []uint32{asn}}
		return append([]ASPathSegment{head}, segs...)
	}
	out := make([]ASPathSegment, len(segs))
	copy(out, segs)
	out[0] = ASPathSegment{Type: SegTypeASSequence, ASNs: append([]uint32{asn}, segs[0].ASNs...)}
	return out
}

// WellKnownCommunity values (RFC 1997 §4).
const (
	CommunityNoExport        uint32 = 0xFFFFFF01
	CommunityNoAdvertise     uint32 = 0xFFFFFF02
	CommunityNoExportSubconfed uint32 = 0xFFFFFF03
)

func DecodeCommunities(value []byte) []uint32 {
	out := make([]uint32, 0, len(value)/4)
	for off := 0; off+4 <= len(value); off += 4 {
		out = append(out, binary.BigEndian.Uint32(value[off:]))
	}
	return out
}

func EncodeCommunities(cs []uint32) []byte {
	buf := make([]byte, len(cs)*4)
	for i, c := range cs {
		binary.BigEndian.PutUint32(buf[i*4:], c)
	}
	return buf
}

// LargeCommunity is an RFC 8092 large community: (GlobalAdmin, Local1,
// Local2), each a full 32-bit value to avoid the 16-bit field squeeze
// that motivated RFC 8092 in the first place.
type LargeCommunity struct {
	GlobalAdmin uint32
	Local1      uint32
	Local2      uint32
}

func EncodeLargeCommunities(cs []LargeCommunity) []byte {
	buf := make([]byte, len(cs)*12)
	for i, c := range cs {
		binary.BigEndian.PutUint32(buf[i*12:], c.GlobalAdmin)
		binary.BigEndian.PutUint32(buf[i*12+4:], c.Local1)
		binary.BigEndian.PutUint32(buf[i*12+8:], c.Local2)
	}
	return buf
}

func DecodeLargeCommunities(value []byte) []LargeCommunity {
	out := make([]LargeCommunity, 0, len(value)/12)
	for off := 0; off+12 <= len(value); off += 12 {
		out = append(out, LargeCommunity{
			GlobalAdmin: binary.BigEndian.Uint32(value[off:]),
			Local1:      binary.BigEndian.Uint32(value[off+4:]),
			Local2:      binary.BigEndian.Uint32(value[off+8:]),
		})
	}
	return out
}

// HasWellKnownCommunity reports whether attrs carries community c among
// its (legacy 4-byte) COMMUNITIES attribute values.
func HasWellKnownCommunity(attrs []PathAttribute, c uint32) bool {
	a := FindAttribute(attrs, AttrCommunities)
	if a == nil {
		return false
	}
	for _, v := range DecodeCommunities(a.Value) {
		if v == c {
			return true
		}
	}
	return false
}
