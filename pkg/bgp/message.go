package bgp

import (
	"fmt"
	"net"

	"github.com/routeflow/ribd/internal/wire"
)

// MsgType is the BGP message header's type field (RFC 4271 §4.1).
type MsgType uint8

const (
	MsgOpen         MsgType = 1
	MsgUpdate       MsgType = 2
	MsgNotification MsgType = 3
	MsgKeepalive    MsgType = 4
	MsgRouteRefresh MsgType = 5 // RFC 2918
)

const headerMarkerLen = 16
const MaxMessageSize = 4096

// Notification error codes (RFC 4271 §4.5) used by the FSM above.
const (
	NotifMessageHeaderError    uint8 = 1
	NotifOpenMessageError      uint8 = 2
	NotifUpdateMessageError    uint8 = 3
	NotifHoldTimerExpired      uint8 = 4
	NotifFSMError              uint8 = 5
	NotifCease                 uint8 = 6
)

// OPEN message subcodes (RFC 4271 §6.2).
const (
	SubcodeUnsupportedVersion    uint8 = 1
	SubcodeBadPeerAS             uint8 = 2
	SubcodeBadBGPIdentifier      uint8 = 3
	SubcodeUnsupportedOptionalParam uint8 = 4
	SubcodeUnacceptableHoldTime  uint8 = 6
)

// DecodeError mirrors the OSPF/IS-IS decode error taxonomy, classified
// Discard/Withdraw/Reset per §4.1/§7 by the caller inspecting Kind.
type DecodeError struct {
	Reason string
	Kind   ErrorKind
}

func (e *DecodeError) Error() string { return "bgp: decode: " + e.Reason }

type ErrorKind int

const (
	ErrDiscard ErrorKind = iota
	ErrTreatAsWithdraw
	ErrReset
)

func decodeErr(kind ErrorKind, format string, args ...any) error {
	return &DecodeError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Header is the common 19-byte BGP message header.
type Header struct {
	Length uint16
	Type   MsgType
}

func EncodeHeader(w *wire.Writer, h Header) {
	var marker [headerMarkerLen]byte
	for i := range marker {
		marker[i] = 0xff
	}
	w.Raw(marker[:])
	w.Uint16(h.Length)
	w.Uint8(uint8(h.Type))
}

func DecodeHeader(r *wire.Reader) (Header, error) {
	marker := r.Bytes(headerMarkerLen)
	var h Header
	h.Length = r.Uint16()
	h.Type = MsgType(r.Uint8())
	if r.Err() != nil {
		return h, decodeErr(ErrReset, "truncated header: %v", r.Err())
	}
	for _, b := range marker {
		if b != 0xff {
			return h, decodeErr(ErrReset, "bad marker (connection not synchronized)")
		}
	}
	if h.Length < 19 || h.Length > MaxMessageSize {
		return h, decodeErr(ErrReset, "bad message length %d", h.Length)
	}
	return h, nil
}

// Capability is a raw OPEN optional-parameter capability (RFC 5492), kept
// undecoded except for type/code so callers can compute the negotiated
// intersection without this package needing to understand every
// capability's payload.
type Capability struct {
	Code  uint8
	Value []byte
}

const (
	CapMultiprotocol  uint8 = 1  // RFC 2858/4760
	CapRouteRefresh   uint8 = 2  // RFC 2918
	CapAS4            uint8 = 65 // RFC 6793 four-octet ASN
	CapGracefulRestart uint8 = 64 // RFC 4724
)

// Open is the decoded OPEN message body (RFC 4271 §4.2).
type Open struct {
	Version  uint8
	MyAS     uint16 // legacy 2-octet field; 23456 (AS_TRANS) when the real AS needs CapAS4
	HoldTime uint16
	BGPID    uint32
	Capabilities []Capability
}

func EncodeOpen(o Open) []byte {
	w := wire.NewWriter(10 + 32)
	w.Uint8(o.Version)
	w.Uint16(o.MyAS)
	w.Uint16(o.HoldTime)
	w.Uint32(o.BGPID)

	paramsW := wire.NewWriter(32)
	if len(o.Capabilities) > 0 {
		capsW := wire.NewWriter(16)
		for _, c := range o.Capabilities {
			capsW.Uint8(c.Code)
			capsW.Uint8(uint8(len(c.Value)))
			capsW.Raw(c.Value)
		}
		caps := capsW.Bytes()
		paramsW.Uint8(2) // optional parameter type 2 = Capabilities
		paramsW.Uint8(uint8(len(caps)))
		paramsW.Raw(caps)
	}
	params := paramsW.Bytes()
	w.Uint8(uint8(len(params)))
	w.Raw(params)
	return w.Bytes()
}

func DecodeOpen(body []byte) (Open, error) {
	var o Open
	r := wire.NewReader(body)
	o.Version = r.Uint8()
	o.MyAS = r.Uint16()
	o.HoldTime = r.Uint16()
	o.BGPID = r.Uint32()
	optLen := r.Uint8()
	if r.Err() != nil {
		return o, decodeErr(ErrReset, "truncated open fixed fields: %v", r.Err())
	}
	if o.Version != 4 {
		return o, decodeErr(ErrReset, "unsupported version %d", o.Version)
	}
	opts := r.Bytes(int(optLen))
	if r.Err() != nil {
		return o, decodeErr(ErrReset, "truncated optional parameters")
	}
	pr := wire.NewReader(opts)
	for pr.Remaining() > 0 {
		ptype := pr.Uint8()
		plen := pr.Uint8()
		pval := pr.Bytes(int(plen))
		if pr.Err() != nil {
			return o, decodeErr(ErrReset, "truncated optional parameter")
		}
		if ptype != 2 {
			continue // unsupported non-capability optional parameter: ignore
		}
		cr := wire.NewReader(pval)
		for cr.Remaining() > 0 {
			code := cr.Uint8()
			clen := cr.Uint8()
			cval := cr.Bytes(int(clen))
			if cr.Err() != nil {
				return o, decodeErr(ErrReset, "truncated capability")
			}
			o.Capabilities = append(o.Capabilities, Capability{Code: code, Value: cval})
		}
	}
	return o, nil
}

// peerASFromOpen returns the peer's real AS number, preferring the 4-octet
// CapAS4 capability value (RFC 6793 §8) over the legacy 2-octet MyAS field
// when both are present (MyAS is AS_TRANS in that case).
func peerASFromOpen(o Open) uint32 {
	for _, c := range o.Capabilities {
		if c.Code == CapAS4 && len(c.Value) == 4 {
			return uint32(c.Value[0])<<24 | uint32(c.Value[1])<<16 | uint32(c.Value[2])<<8 | uint32(c.Value[3])
		}
	}
	return uint32(o.MyAS)
}

// ValidateOpen performs the OPEN message validation required before an FSM
// may move from OpenSent to OpenConfirm (RFC 4271 §6.2): the peer's AS must
// match the configured PeerAS, and its BGP Identifier must not collide with
// our own LocalID. A zero Config.PeerAS or Config.LocalID skips the
// corresponding check (unconfigured).
func ValidateOpen(o Open, cfg Config) (subcode uint8, err error) {
	peerAS := peerASFromOpen(o)
	if cfg.PeerAS != 0 && peerAS != cfg.PeerAS {
		return SubcodeBadPeerAS, fmt.Errorf("bgp: open: peer AS %d does not match configured %d", peerAS, cfg.PeerAS)
	}
	if cfg.LocalID != 0 && o.BGPID == cfg.LocalID {
		return SubcodeBadBGPIdentifier, fmt.Errorf("bgp: open: peer BGP identifier %#x collides with local id", o.BGPID)
	}
	return 0, nil
}

// NegotiateCapabilities returns the intersection of local and peer
// capability codes (RFC 5492 §4), the set both sides can use.
func NegotiateCapabilities(local, peer []Capability) []uint8 {
	peerCodes := make(map[uint8]bool, len(peer))
	for _, c := range peer {
		peerCodes[c.Code] = true
	}
	var out []uint8
	for _, c := range local {
		if peerCodes[c.Code] {
			out = append(out, c.Code)
		}
	}
	return out
}

// Notification is the decoded NOTIFICATION message body (RFC 4271 §4.5).
type Notification struct {
	Code    uint8
	Subcode uint8
	Data    []byte
}

func EncodeNotification(n Notification) []byte {
	w := wire.NewWriter(2 + len(n.Data))
	w.Uint8(n.Code)
	w.Uint8(n.Subcode)
	w.Raw(n.Data)
	return w.Bytes()
}

func DecodeNotification(body []byte) (Notification, error) {
	r := wire.NewReader(body)
	var n Notification
	n.Code = r.Uint8()
	n.Subcode = r.Uint8()
	n.Data = r.Bytes(r.Remaining())
	if r.Err() != nil {
		return n, decodeErr(ErrReset, "truncated notification: %v", r.Err())
	}
	return n, nil
}

// Prefix is an IPv4/IPv6 NLRI entry: a prefix length and the minimal
// number of significant bytes (RFC 4271 §4.3 "Network Layer Reachability
// Information").
type Prefix struct {
	Length uint8
	Bytes  []byte // len(Bytes) == ceil(Length/8)
}

func (p Prefix) String() string {
	full := make([]byte, 4)
	copy(full, p.Bytes)
	return fmt.Sprintf("%s/%d", net.IP(full).String(), p.Length)
}

func EncodePrefix(w *wire.Writer, p Prefix) {
	w.Uint8(p.Length)
	w.Raw(p.Bytes)
}

func DecodePrefix(r *wire.Reader) (Prefix, error) {
	var p Prefix
	p.Length = r.Uint8()
	n := (int(p.Length) + 7) / 8
	p.Bytes = r.Bytes(n)
	if r.Err() != nil {
		return p, decodeErr(ErrTreatAsWithdraw, "truncated prefix: %v", r.Err())
	}
	return p, nil
}

func decodePrefixList(r *wire.Reader) ([]Prefix, error) {
	var out []Prefix
	for r.Remaining() > 0 {
		p, err := DecodePrefix(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Update is the decoded UPDATE message body (RFC 4271 §4.3).
type Update struct {
	WithdrawnRoutes []Prefix
	PathAttributes  []PathAttribute
	NLRI            []Prefix
}

func EncodeUpdate(u Update) []byte {
	wdW := wire.NewWriter(16)
	for _, p := range u.WithdrawnRoutes {
		EncodePrefix(wdW, p)
	}
	wd := wdW.Bytes()

	paW := wire.NewWriter(32)
	for _, a := range u.PathAttributes {
		EncodePathAttribute(paW, a)
	}
	pa := paW.Bytes()

	nlriW := wire.NewWriter(16)
	for _, p := range u.NLRI {
		EncodePrefix(nlriW, p)
	}
	nlri := nlriW.Bytes()

	w := wire.NewWriter(4 + len(wd) + len(pa) + len(nlri))
	w.Uint16(uint16(len(wd)))
	w.Raw(wd)
	w.Uint16(uint16(len(pa)))
	w.Raw(pa)
	w.Raw(nlri)
	return w.Bytes()
}

func DecodeUpdate(body []byte) (Update, error) {
	r := wire.NewReader(body)
	var u Update
	wdLen := r.Uint16()
	if r.Err() != nil {
		return u, decodeErr(ErrReset, "truncated update withdrawn-routes length")
	}
	wdBuf := r.Bytes(int(wdLen))
	if r.Err() != nil {
		return u, decodeErr(ErrReset, "truncated withdrawn routes")
	}
	wd, err := decodePrefixList(wire.NewReader(wdBuf))
	if err != nil {
		return u, err
	}
	u.WithdrawnRoutes = wd

	paLen := r.Uint16()
	if r.Err() != nil {
		return u, decodeErr(ErrReset, "truncated update path-attribute length")
	}
	paBuf := r.Bytes(int(paLen))
	if r.Err() != nil {
		return u, decodeErr(ErrReset, "truncated path attributes")
	}
	attrs, err := DecodePathAttributes(paBuf)
	if err != nil {
		return u, err
	}
	u.PathAttributes = attrs

	nlri, err := decodePrefixList(wire.NewReader(r.Bytes(r.Remaining())))
	if err != nil {
		return u, err
	}
	u.NLRI = nlri
	return u, nil
}
