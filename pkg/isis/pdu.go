package isis

import (
	"fmt"

	"github.com/routeflow/ribd/internal/wire"
)

// PDUType is the IS-IS common header's PDU type field (ISO 10589 §9.4).
type PDUType uint8

const (
	PDUL1LANHello PDUType = 15
	PDUL2LANHello PDUType = 16
	PDUP2PHello   PDUType = 17
	PDUL1LSP      PDUType = 18
	PDUL2LSP      PDUType = 20
	PDUL1CSNP     PDUType = 24
	PDUL2CSNP     PDUType = 25
	PDUL1PSNP     PDUType = 26
	PDUL2PSNP     PDUType = 27
)

const (
	commonHeaderLen = 8
	idLength        = 6 // system-id length in bytes (fixed at 6, matching the common deployment profile)
)

// DecodeError mirrors ospf.DecodeError for the IS-IS codec's structural
// failures.
type DecodeError struct{ Reason string }

func (e *DecodeError) Error() string { return "isis: decode: " + e.Reason }

func decodeErr(format string, args ...any) error {
	return &DecodeError{Reason: fmt.Sprintf(format, args...)}
}

// CommonHeader is the 8-byte fixed part common to every IS-IS PDU (ISO
// 10589 §9.4), immediately followed by the PDU-specific fixed fields and
// then the TLV stream.
type CommonHeader struct {
	IRPDiscriminator uint8 // always 0x83 (ISO 9577 NLPID for IS-IS)
	LengthIndicator  uint8 // length of the fixed header, in bytes
	VersionProtoID   uint8 // always 1
	IDLength         uint8 // 0 means the default 6-byte system-id
	PDUType          PDUType
	Version          uint8
	Reserved         uint8
	MaxAreaAddresses uint8
}

const isisIRPDiscriminator = 0x83

func DecodeCommonHeader(r *wire.Reader) (CommonHeader, error) {
	var h CommonHeader
	h.IRPDiscriminator = r.Uint8()
	h.LengthIndicator = r.Uint8()
	h.VersionProtoID = r.Uint8()
	h.IDLength = r.Uint8()
	h.PDUType = PDUType(r.Uint8() & 0x1f) // low 5 bits; high 3 are reserved/circuit-type per PDU
	h.Version = r.Uint8()
	h.Reserved = r.Uint8()
	h.MaxAreaAddresses = r.Uint8()
	if r.Err() != nil {
		return h, decodeErr("truncated common header: %v", r.Err())
	}
	if h.IRPDiscriminator != isisIRPDiscriminator {
		return h, decodeErr("bad IRP discriminator 0x%02x", h.IRPDiscriminator)
	}
	if h.VersionProtoID != 1 {
		return h, decodeErr("unsupported protocol id %d", h.VersionProtoID)
	}
	if h.IDLength != 0 && h.IDLength != idLength {
		return h, decodeErr("unsupported id length %d", h.IDLength)
	}
	return h, nil
}

func EncodeCommonHeader(w *wire.Writer, h CommonHeader) {
	w.Uint8(isisIRPDiscriminator)
	w.Uint8(h.LengthIndicator)
	w.Uint8(1)
	w.Uint8(h.IDLength)
	w.Uint8(uint8(h.PDUType))
	w.Uint8(h.Version)
	w.Uint8(0)
	w.Uint8(h.MaxAreaAddresses)
}

// TLVType identifies an IS-IS TLV code (ISO 10589, RFC 5305/5308/5310/7981).
type TLVType uint8

const (
	TLVAreaAddresses       TLVType = 1
	TLVIsNeighbors         TLVType = 2
	TLVAuthentication      TLVType = 10
	TLVIsReachLegacy       TLVType = 2
	TLVExtendedIsReach     TLVType = 22  // RFC 5305
	TLVProtocolsSupported  TLVType = 129
	TLVIPv4InterfaceAddr   TLVType = 132
	TLVExtendedIPv4Reach   TLVType = 135
	TLVDynamicHostname     TLVType = 137
	TLVIPv6InterfaceAddr   TLVType = 232
	TLVIPv6Reach           TLVType = 236
	TLVRouterCapability    TLVType = 242 // RFC 7981
	TLVPurgeOriginatorID   TLVType = 13  // RFC 6232
	TLVThreeWayAdjacency   TLVType = 240 // RFC 5303
	TLVRestartSignaling    TLVType = 211 // RFC 5306
	TLVExtendedSeqNum      TLVType = 25  // draft-ietf-lsr-isis-extended-sequence-no
)

// TLV is a generic, undecoded type-length-value record.
type TLV struct {
	Type  TLVType
	Value []byte
}

// DecodeTLVs consumes r to exhaustion, yielding each TLV; unknown types are
// returned as opaque records, matching the "discard-attribute" tolerance
// for unrecognized TLVs rather than failing the whole PDU.
func DecodeTLVs(r *wire.Reader) ([]TLV, error) {
	var out []TLV
	for r.Remaining() > 0 {
		if r.Remaining() < 2 {
			return nil, decodeErr("truncated tlv type/length")
		}
		t := TLVType(r.Uint8())
		l := int(r.Uint8())
		v := r.Bytes(l)
		if r.Err() != nil {
			return nil, decodeErr("truncated tlv value for type %d", t)
		}
		out = append(out, TLV{Type: t, Value: v})
	}
	return out, nil
}

func EncodeTLVs(w *wire.Writer, tlvs []TLV) {
	for _, t := range tlvs {
		w.Uint8(uint8(t.Type))
		w.Uint8(uint8(len(t.Value)))
		w.Raw(t.Value)
	}
}

// FindTLV returns the first TLV of the given type, or nil.
func FindTLV(tlvs []TLV, t TLVType) *TLV {
	for i := range tlvs {
		if tlvs[i].Type == t {
			return &tlvs[i]
		}
	}
	return nil
}

// PurgeOriginatorIdentification is the RFC 6232 POI TLV body: the system-id
// that originated the purge and, when the purge results from a received
// LSP whose source adjacency differs, that adjacency's system-id too.
type PurgeOriginatorIdentification struct {
	OriginatorID    [6]byte
	ReceivedFromID  [6]byte
	HasReceivedFrom bool
}

func EncodePOI(p PurgeOriginatorIdentification) []byte {
	if p.HasReceivedFrom {
		buf := make([]byte, 13)
		buf[0] = idLength
		copy(buf[1:7], p.OriginatorID[:])
		copy(buf[7:13], p.ReceivedFromID[:])
		return buf
	}
	buf := make([]byte, 7)
	buf[0] = idLength
	copy(buf[1:7], p.OriginatorID[:])
	return buf
}

func DecodePOI(value []byte) (PurgeOriginatorIdentification, error) {
	var p PurgeOriginatorIdentification
	if len(value) != 7 && len(value) != 13 {
		return p, decodeErr("bad POI length %d", len(value))
	}
	copy(p.OriginatorID[:], value[1:7])
	if len(value) == 13 {
		p.HasReceivedFrom = true
		copy(p.ReceivedFromID[:], value[7:13])
	}
	return p, nil
}

// AuthenticationTLV carries the IS-IS authentication TLV's auth type byte
// plus its payload (cleartext password or HMAC digest), RFC 5310.
type AuthenticationTLV struct {
	AuthType uint8
	Payload  []byte
}

const (
	AuthTypeCleartext uint8 = 1
	AuthTypeHMACMD5    uint8 = 54 // HMAC-MD5 (RFC 5304)
)
